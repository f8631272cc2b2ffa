package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	venueClient "github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// UseCase use case для получения слотов корта на дату
type UseCase struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	cache           SlotsCache
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	cache SlotsCache,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		cache:           cache,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
// Кэш хранит занятость слотов без учёта minBookingNotice: фильтр по времени
// подачи заявки применяется после чтения из кэша, иначе записи для "сегодня"
// устаревали бы каждую минуту
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, court=%d, date=%s",
		req.UserID, req.CourtID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем корт из каталога
	court, err := uc.venueClient.GetCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, venueClient.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailableSlots: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 4. Выключенный корт не бронируется
	if !court.IsActive {
		uc.logger.Warn("GetAvailableSlots: court id=%d is not active", req.CourtID)
		return nil, ErrCourtInactive
	}

	// 5. Валидация даты
	if err := validateDate(req.Date, now, uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Пробуем взять занятость из кэша
	slots, hit, err := uc.cache.GetSlots(ctx, req.CourtID, req.Date)
	if err != nil {
		// Кэш не авторитетен: при ошибке пересчитываем из хранилища
		uc.logger.Warn("GetAvailableSlots: cache read failed for court=%d: %v", req.CourtID, err)
		hit = false
	}

	if !hit {
		slots, err = uc.computeSlots(ctx, court, req)
		if err != nil {
			return nil, err
		}

		if err := uc.cache.SetSlots(ctx, req.CourtID, req.Date, slots); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache write failed for court=%d: %v", req.CourtID, err)
		}
	}

	// 7. Фильтр по минимальному времени до начала (для сегодняшних дат)
	slots = applyNoticeFilter(slots, req.Date, now, uc.policy.MinBookingNoticeMinutes)

	uc.logger.Info("GetAvailableSlots: %d slots for court=%d, date=%s (cache hit=%t)",
		len(slots), req.CourtID, req.Date.Format(domain.DateFormat), hit)

	return &Response{
		CourtID:            court.ID,
		VenueID:            court.VenueID,
		Date:               req.Date,
		GranularityMinutes: uc.policy.GranularityMinutes,
		Slots:              slots,
	}, nil
}

// computeSlots строит календарь слотов корта и отмечает занятость
// по подтверждённым бронированиям из реестра
func (uc *UseCase) computeSlots(ctx context.Context, court *venueClient.Court, req *Request) ([]domain.AvailableSlot, error) {
	open, err := types.NewTimeStringFromString(court.OperatingHours.Start)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: court id=%d has invalid opening time %q", court.ID, court.OperatingHours.Start)
		return nil, fmt.Errorf("%w: opening time: %v", ErrInvalidRange, err)
	}
	close, err := types.NewTimeStringFromString(court.OperatingHours.End)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: court id=%d has invalid closing time %q", court.ID, court.OperatingHours.End)
		return nil, fmt.Errorf("%w: closing time: %v", ErrInvalidRange, err)
	}

	slotTimes, err := generateSlotTimes(open, close, uc.policy.GranularityMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for court=%d: %v", court.ID, err)
		return nil, err
	}

	reservations, err := uc.reservationRepo.GetByCourtAndDate(ctx, req.CourtID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	return markAvailability(slotTimes, uc.policy.GranularityMinutes, reservations), nil
}
