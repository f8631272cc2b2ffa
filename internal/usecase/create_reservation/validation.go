package create_reservation

import (
	"fmt"
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	venueClient "github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, policy domain.BookingPolicy) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Длительность - положительное кратное гранулярности
	if !policy.ValidDuration(req.DurationMinutes) {
		return fmt.Errorf("%w: duration must be a positive multiple of %d minutes, at most %d",
			ErrInvalidInput, policy.GranularityMinutes, policy.MaxDurationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что бронирование не нарушает minBookingNoticeMinutes
func validateNotice(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	minAllowedTime, err := types.NewTimeString(now).AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// validateWithinHours проверяет, что [start, end) целиком внутри рабочих часов корта
func validateWithinHours(court *venueClient.Court, start, end types.TimeString) error {
	open, err := types.NewTimeStringFromString(court.OperatingHours.Start)
	if err != nil {
		return fmt.Errorf("%w: court has invalid opening time %q", ErrInternal, court.OperatingHours.Start)
	}
	close, err := types.NewTimeStringFromString(court.OperatingHours.End)
	if err != nil {
		return fmt.Errorf("%w: court has invalid closing time %q", ErrInternal, court.OperatingHours.End)
	}

	if start.IsBefore(open) || end.IsAfter(close) {
		return ErrOutOfHours
	}

	return nil
}

// findOverlap ищет подтверждённое бронирование, пересекающееся с [start, end)
// Используются полуинтервалы: встык идущие бронирования не пересекаются
func findOverlap(start, end types.TimeString, reservations []*domain.Reservation) *domain.Reservation {
	for _, res := range reservations {
		if !res.IsConfirmed() {
			continue
		}
		if res.Overlaps(start, end) {
			return res
		}
	}
	return nil
}

// calculatePrice вычисляет итоговую цену: цена за час, умноженная на длительность в часах
func calculatePrice(pricePerHour float64, durationMinutes int) float64 {
	return pricePerHour * float64(durationMinutes) / float64(domain.MinutesPerHour)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
