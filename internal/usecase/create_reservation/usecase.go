package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	venueClient "github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	"github.com/rameshwari28/QuickCourt/pkg/simpletxmanager"
	"github.com/rameshwari28/QuickCourt/pkg/txmanager"
)

// UseCase use case создания бронирования
//
// Инвариант реестра: никакие два подтверждённых бронирования одного корта
// на одну дату не пересекаются полуинтервалами [start, end). Проверка
// пересечений и вставка выполняются в одной сериализуемой транзакции
// с блокировкой строк (корт, дата), поэтому из двух конкурирующих запросов
// на пересекающиеся интервалы ровно один получает ErrSlotConflict.
type UseCase struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	cache           SlotsCache
	txManager       TransactionManager
	policy          domain.BookingPolicy
	createTimeout   time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	cache SlotsCache,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	createTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		cache:           cache,
		txManager:       txManager,
		policy:          policy,
		createTimeout:   createTimeout,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, court=%d, date=%s, start=%s, duration=%d",
		req.UserID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.policy); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем корт из каталога
	court, err := uc.venueClient.GetCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, venueClient.ErrCourtNotFound) {
			uc.logger.Warn("CreateReservation: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateReservation: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 4. Выключенный корт не бронируется
	if !court.IsActive {
		uc.logger.Warn("CreateReservation: court id=%d is not active", req.CourtID)
		return nil, ErrCourtInactive
	}

	// 5. Получаем площадку (владелец, название, признак одобрения)
	venue, err := uc.venueClient.GetVenue(ctx, court.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateReservation: venue id=%d not found", court.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateReservation: failed to get venue id=%d: %v", court.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	if !venue.IsApproved {
		uc.logger.Warn("CreateReservation: venue id=%d is not approved", venue.ID)
		return nil, ErrVenueNotApproved
	}

	// 6. Валидация даты и времени подачи заявки
	if err := validateDate(req.Date, now, uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req.Date, req.StartTime, now, uc.policy.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateReservation: notice validation failed: %v", err)
		return nil, err
	}

	// 7. Интервал должен целиком попадать в рабочие часы
	endTime, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateReservation: interval crosses midnight: %v", err)
		return nil, ErrOutOfHours
	}
	if err := validateWithinHours(court, req.StartTime, endTime); err != nil {
		uc.logger.Warn("CreateReservation: interval %s-%s outside operating hours %s-%s",
			req.StartTime, endTime, court.OperatingHours.Start, court.OperatingHours.End)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 8. Проверка пересечений и вставка в одной сериализуемой транзакции
	// Ограничиваем время ожидания: занятый реестр отвечает ErrBusy, а не висит
	txCtx, cancel := context.WithTimeout(ctx, uc.createTimeout)
	defer cancel()

	err = uc.txManager.DoSerializable(txCtx, func(txCtx context.Context) error {
		// 8.1. Читаем подтверждённые бронирования корта на дату с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetByCourtAndDate(txCtx, req.CourtID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			// Ошибку хранилища сохраняем в цепочке: менеджер транзакций
			// распознаёт по ней ошибки сериализации и повторяет попытку
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 8.2. Перепроверяем доступность внутри границы атомарности
		if conflict := findOverlap(req.StartTime, endTime, reservations); conflict != nil {
			uc.logger.Warn("CreateReservation: interval %s-%s overlaps reservation id=%d",
				req.StartTime, endTime, conflict.ID)
			return ErrSlotConflict
		}

		// 8.3. Создаем бронирование с денормализацией данных каталога
		reservation := &domain.Reservation{
			UserID:          req.UserID,
			VenueID:         court.VenueID,
			CourtID:         court.ID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusConfirmed,
			TotalPrice:      calculatePrice(court.PricePerHour, req.DurationMinutes),
			// Денормализация данных каталога
			CourtName: court.Name,
			VenueName: venue.Name,
			SportType: court.SportType,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	// 9. Инвалидируем кэш доступности (после фиксации, ошибка не критична)
	if err := uc.cache.Invalidate(ctx, req.CourtID, req.Date); err != nil {
		uc.logger.Warn("CreateReservation: cache invalidation failed for court=%d: %v", req.CourtID, err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, price=%.2f",
		result.ID, result.TotalPrice)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		VenueID:         result.VenueID,
		CourtID:         result.CourtID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		TotalPrice:      result.TotalPrice,
		CourtName:       result.CourtName,
		VenueName:       result.VenueName,
		SportType:       result.SportType,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// mapTxError переводит ошибки менеджера транзакций в ошибки usecase
// Таймаут и исчерпанные повторы сериализации - временная занятость (ErrBusy),
// проигранная гонка за интервал - ErrSlotConflict
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotConflict):
		return ErrSlotConflict
	case errors.Is(err, txmanager.ErrTxTimeout),
		errors.Is(err, simpletxmanager.ErrTxTimeout),
		errors.Is(err, txmanager.ErrSerialization),
		errors.Is(err, simpletxmanager.ErrSerialization),
		errors.Is(err, context.DeadlineExceeded):
		uc.logger.Warn("CreateReservation: ledger busy: %v", err)
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case errors.Is(err, ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}
