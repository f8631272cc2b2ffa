package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	venueClient "github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// UseCase use case проверки доступности интервала [start, start+duration)
// на корте в указанную дату.
//
// Это read-only запрос для подсказки пользователю: перед созданием
// бронирования та же проверка выполняется заново внутри сериализуемой
// транзакции, поэтому положительный ответ здесь ничего не резервирует.
type UseCase struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет проверку доступности
// Любое сомнение трактуется как недоступность (fail closed)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: court=%d, date=%s, start=%s, duration=%d",
		req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.policy); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата в прошлом не проверяется по реестру
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("CheckAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем корт из каталога
	court, err := uc.venueClient.GetCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, venueClient.ErrCourtNotFound) {
			uc.logger.Warn("CheckAvailability: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 4. Выключенный корт всегда недоступен
	if !court.IsActive {
		return unavailable(domain.ReasonCourtInactive), nil
	}

	// 5. Интервал должен целиком попадать в рабочие часы
	within, err := intervalWithinHours(court, req.StartTime, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("CheckAvailability: court id=%d has invalid operating hours: %v", req.CourtID, err)
		return nil, err
	}
	if !within {
		return unavailable(domain.ReasonOutOfHours), nil
	}

	// 6. Интервал не должен пересекаться с подтверждёнными бронированиями
	reservations, err := uc.reservationRepo.GetByCourtAndDate(ctx, req.CourtID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	end, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		return unavailable(domain.ReasonOutOfHours), nil
	}

	for _, res := range reservations {
		if res.IsConfirmed() && res.Overlaps(req.StartTime, end) {
			uc.logger.Info("CheckAvailability: court=%d, %s-%s overlaps reservation id=%d",
				req.CourtID, req.StartTime, end, res.ID)
			return unavailable(domain.ReasonOverlap), nil
		}
	}

	return &Response{Available: true}, nil
}

// intervalWithinHours проверяет, что [start, start+duration) целиком внутри
// рабочих часов корта
func intervalWithinHours(court *venueClient.Court, start types.TimeString, durationMinutes int) (bool, error) {
	open, err := types.NewTimeStringFromString(court.OperatingHours.Start)
	if err != nil {
		return false, fmt.Errorf("%w: opening time: %v", ErrInvalidRange, err)
	}
	close, err := types.NewTimeStringFromString(court.OperatingHours.End)
	if err != nil {
		return false, fmt.Errorf("%w: closing time: %v", ErrInvalidRange, err)
	}
	if !open.IsBefore(close) {
		return false, fmt.Errorf("%w: open %s >= close %s", ErrInvalidRange, open, close)
	}

	if start.IsBefore(open) {
		return false, nil
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Интервал перевалил за полночь
		return false, nil
	}

	return !end.IsAfter(close), nil
}
