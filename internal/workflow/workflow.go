package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/usecase/check_availability"
	"github.com/rameshwari28/QuickCourt/internal/usecase/create_reservation"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// Manager управляет сессиями пошагового бронирования.
// Одна сессия на пользователя, переходы строго по схеме:
// selecting_date -> selecting_court -> selecting_slot -> confirming -> booked,
// отказ возвращает сессию в selecting_slot с причиной в RejectReason
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	availability AvailabilityChecker
	creator      ReservationCreator
	venueClient  VenueServiceClient
	publisher    Publisher
	logger       Logger
}

// NewManager создает новый менеджер сессий бронирования
func NewManager(
	availability AvailabilityChecker,
	creator ReservationCreator,
	venueClient VenueServiceClient,
	publisher Publisher,
	logger Logger,
) *Manager {
	return &Manager{
		sessions:     make(map[uuid.UUID]*Session),
		availability: availability,
		creator:      creator,
		venueClient:  venueClient,
		publisher:    publisher,
		logger:       logger,
	}
}

// StartSession начинает новую сессию бронирования.
// Пустой идентификатор пользователя недопустим: без него сессия
// никогда не сможет дойти до подтверждения
func (m *Manager) StartSession(userID int64, role domain.Role) (*Snapshot, error) {
	if userID <= 0 {
		return nil, ErrNoUser
	}

	session := &Session{
		ID:     uuid.New(),
		UserID: userID,
		Role:   role,
		State:  StateSelectingDate,
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.logger.Info("StartSession: started session=%s for user=%d", session.ID, userID)

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked(), nil
}

// SelectDate выбирает дату бронирования.
// Сбрасывает выбор корта и слота, сделанный для прежней даты
func (m *Manager) SelectDate(ctx context.Context, sessionID uuid.UUID, date time.Time) (*Snapshot, error) {
	session, err := m.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.confirmInFlight {
		return nil, ErrConfirmInFlight
	}

	switch session.State {
	case StateSelectingDate, StateSelectingCourt, StateSelectingSlot:
	default:
		return nil, fmt.Errorf("%w: select date from %s", ErrInvalidTransition, session.State)
	}

	session.Date = date
	session.CourtID = 0
	session.VenueID = 0
	session.StartTime = ""
	session.DurationMinutes = 0
	session.State = StateSelectingCourt
	session.RejectReason = ""

	m.logger.Info("SelectDate: session=%s date=%s", sessionID, date.Format(domain.DateFormat))
	return session.snapshotLocked(), nil
}

// SelectCourt выбирает корт на уже выбранную дату.
// Неактивный корт недоступен всегда
func (m *Manager) SelectCourt(ctx context.Context, sessionID uuid.UUID, courtID int64) (*Snapshot, error) {
	session, err := m.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.confirmInFlight {
		return nil, ErrConfirmInFlight
	}

	switch session.State {
	case StateSelectingCourt, StateSelectingSlot:
	default:
		return nil, fmt.Errorf("%w: select court from %s", ErrInvalidTransition, session.State)
	}

	court, err := m.venueClient.GetCourt(ctx, courtID)
	if err != nil {
		m.logger.Error("SelectCourt: session=%s failed to get court=%d: %v", sessionID, courtID, err)
		return nil, fmt.Errorf("%w: SelectCourt - venue service error: %v", ErrInternal, err)
	}
	if !court.IsActive {
		m.logger.Warn("SelectCourt: session=%s court=%d is inactive", sessionID, courtID)
		return nil, ErrSlotUnavailable
	}

	session.CourtID = court.ID
	session.VenueID = court.VenueID
	session.StartTime = ""
	session.DurationMinutes = 0
	session.State = StateSelectingSlot
	session.RejectReason = ""

	m.logger.Info("SelectCourt: session=%s court=%d venue=%d", sessionID, court.ID, court.VenueID)
	return session.snapshotLocked(), nil
}

// SelectSlot выбирает интервал и проверяет его доступность.
// Недоступный интервал не продвигает сессию: пользователь выбирает заново
func (m *Manager) SelectSlot(ctx context.Context, sessionID uuid.UUID, startTime types.TimeString, durationMinutes int) (*Snapshot, error) {
	session, err := m.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.confirmInFlight {
		session.mu.Unlock()
		return nil, ErrConfirmInFlight
	}
	if session.State != StateSelectingSlot {
		state := session.State
		session.mu.Unlock()
		return nil, fmt.Errorf("%w: select slot from %s", ErrInvalidTransition, state)
	}
	courtID := session.CourtID
	date := session.Date
	session.mu.Unlock()

	// Проверяем доступность без удержания мьютекса сессии
	result, err := m.availability.Execute(ctx, &check_availability.Request{
		CourtID:         courtID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		m.logger.Error("SelectSlot: session=%s availability check failed: %v", sessionID, err)
		return nil, fmt.Errorf("%w: SelectSlot - availability check: %v", ErrInternal, err)
	}
	if !result.Available {
		m.logger.Warn("SelectSlot: session=%s slot %s+%dm unavailable, reason=%v",
			sessionID, startTime, durationMinutes, result.Reason)
		return nil, ErrSlotUnavailable
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.confirmInFlight {
		return nil, ErrConfirmInFlight
	}
	if session.State != StateSelectingSlot {
		return nil, fmt.Errorf("%w: select slot from %s", ErrInvalidTransition, session.State)
	}

	session.StartTime = startTime
	session.DurationMinutes = durationMinutes
	session.RejectReason = ""

	m.logger.Info("SelectSlot: session=%s slot %s+%dm selected", sessionID, startTime, durationMinutes)
	return session.snapshotLocked(), nil
}

// Confirm подтверждает выбранный интервал и создает бронирование.
// Пока подтверждение в полёте, любые другие переходы сессии отклоняются.
// Проигранная гонка возвращает сессию к выбору слота с сохранением даты и корта
func (m *Manager) Confirm(ctx context.Context, sessionID uuid.UUID) (*Snapshot, error) {
	session, err := m.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.confirmInFlight {
		session.mu.Unlock()
		return nil, ErrConfirmInFlight
	}
	if session.State != StateSelectingSlot || session.StartTime.IsZero() {
		state := session.State
		session.mu.Unlock()
		return nil, fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, state)
	}

	session.State = StateConfirming
	session.confirmInFlight = true

	req := &create_reservation.Request{
		UserID:          session.UserID,
		CourtID:         session.CourtID,
		Date:            session.Date,
		StartTime:       session.StartTime,
		DurationMinutes: session.DurationMinutes,
	}
	session.mu.Unlock()

	// Создаем бронирование без удержания мьютекса: конкурентные переходы
	// в это время получают ErrConfirmInFlight, а не блокируются
	result, createErr := m.creator.Execute(ctx, req)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.confirmInFlight = false

	switch {
	case createErr == nil:
		session.State = StateBooked
		session.Result = result
		m.logger.Info("Confirm: session=%s booked reservation id=%d", sessionID, result.ID)
		m.publishConfirmed(ctx, session, result)
		return session.snapshotLocked(), nil

	case errors.Is(createErr, create_reservation.ErrSlotConflict):
		// Интервал заняли раньше нас: возвращаемся к выбору слота,
		// дата и корт сохраняются
		session.State = StateSelectingSlot
		session.StartTime = ""
		session.DurationMinutes = 0
		session.RejectReason = RejectOverlap
		m.logger.Warn("Confirm: session=%s lost the race, back to slot selection", sessionID)
		m.requeryAvailability(ctx, session, req)
		return session.snapshotLocked(), ErrSlotConflict

	case errors.Is(createErr, create_reservation.ErrBusy):
		// Транзиентная ошибка: слот сохраняем, подтверждение можно повторить
		session.State = StateSelectingSlot
		m.logger.Warn("Confirm: session=%s ledger busy, confirmation can be retried", sessionID)
		return session.snapshotLocked(), ErrBusy

	default:
		session.State = StateSelectingSlot
		m.logger.Error("Confirm: session=%s create failed: %v", sessionID, createErr)
		return session.snapshotLocked(), fmt.Errorf("%w: Confirm - create failed: %v", ErrInternal, createErr)
	}
}

// GetSession возвращает снимок сессии
func (m *Manager) GetSession(sessionID uuid.UUID) (*Snapshot, error) {
	session, err := m.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked(), nil
}

// CloseSession удаляет сессию
func (m *Manager) CloseSession(sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

func (m *Manager) getSession(sessionID uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// publishConfirmed публикует событие о созданном бронировании (best effort)
func (m *Manager) publishConfirmed(ctx context.Context, session *Session, res *create_reservation.Response) {
	event := ConfirmationEvent{
		SessionID:     session.ID,
		ReservationID: res.ID,
		UserID:        res.UserID,
		VenueID:       res.VenueID,
		CourtID:       res.CourtID,
		Date:          res.Date.Format(domain.DateFormat),
		StartTime:     res.StartTime.String(),
		EndTime:       res.EndTime.String(),
		TotalPrice:    res.TotalPrice,
	}

	if err := m.publisher.PublishConfirmed(ctx, event); err != nil {
		m.logger.Warn("publishConfirmed: session=%s failed to publish event: %v", session.ID, err)
	}
}

// requeryAvailability перечитывает доступность после проигранной гонки,
// чтобы пользователь сразу увидел актуальную картину (best effort)
func (m *Manager) requeryAvailability(ctx context.Context, session *Session, req *create_reservation.Request) {
	_, err := m.availability.Execute(ctx, &check_availability.Request{
		CourtID:         req.CourtID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		m.logger.Warn("requeryAvailability: session=%s re-query failed: %v", session.ID, err)
	}
}
