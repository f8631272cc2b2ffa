package workflow

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/usecase/create_reservation"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// State состояние сессии бронирования.
// Отказ не является терминальным состоянием: проигранная гонка возвращает
// сессию в selecting_slot с заполненным RejectReason, чтобы пользователь
// мог сразу выбрать другой слот
type State string

const (
	StateSelectingDate  State = "selecting_date"
	StateSelectingCourt State = "selecting_court"
	StateSelectingSlot  State = "selecting_slot"
	StateConfirming     State = "confirming"
	StateBooked         State = "booked"
)

// RejectReason причина отказа последнего подтверждения
type RejectReason string

const (
	RejectOverlap RejectReason = "overlap"
)

// Session сессия пошагового бронирования одного пользователя.
// Все переходы выполняются под мьютексом: из одной сессии нельзя
// отправить два конкурентных подтверждения
type Session struct {
	mu sync.Mutex

	ID     uuid.UUID
	UserID int64
	Role   domain.Role

	State        State
	RejectReason RejectReason

	// Выбор пользователя, накапливается по шагам
	Date            time.Time
	CourtID         int64
	VenueID         int64
	StartTime       types.TimeString
	DurationMinutes int

	// Флаг выполняющегося подтверждения
	confirmInFlight bool

	// Созданное бронирование после успешного подтверждения
	Result *create_reservation.Response
}

// Snapshot снимок состояния сессии для отдачи наружу
type Snapshot struct {
	ID              uuid.UUID
	UserID          int64
	State           State
	RejectReason    RejectReason
	Date            time.Time
	CourtID         int64
	VenueID         int64
	StartTime       types.TimeString
	DurationMinutes int
	Result          *create_reservation.Response
}

// snapshotLocked собирает снимок, вызывается под мьютексом
func (s *Session) snapshotLocked() *Snapshot {
	return &Snapshot{
		ID:              s.ID,
		UserID:          s.UserID,
		State:           s.State,
		RejectReason:    s.RejectReason,
		Date:            s.Date,
		CourtID:         s.CourtID,
		VenueID:         s.VenueID,
		StartTime:       s.StartTime,
		DurationMinutes: s.DurationMinutes,
		Result:          s.Result,
	}
}
