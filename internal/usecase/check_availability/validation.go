package check_availability

import (
	"fmt"
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, policy domain.BookingPolicy) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !policy.ValidDuration(req.DurationMinutes) {
		return fmt.Errorf("%w: duration must be a positive multiple of %d minutes, at most %d",
			ErrInvalidInput, policy.GranularityMinutes, policy.MaxDurationMinutes)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
