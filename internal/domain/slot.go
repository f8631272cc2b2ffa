package domain

import "github.com/rameshwari28/QuickCourt/pkg/types"

// AvailableSlot represents a single bookable time granule on a court's calendar
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	IsAvailable     bool
}

// AvailabilityReason explains why a requested interval is not available
type AvailabilityReason string

const (
	// ReasonOutOfHours интервал не попадает целиком в рабочие часы корта
	ReasonOutOfHours AvailabilityReason = "out_of_hours"

	// ReasonOverlap интервал пересекается с подтверждённым бронированием
	ReasonOverlap AvailabilityReason = "overlap"

	// ReasonCourtInactive корт выключен из бронирования
	ReasonCourtInactive AvailabilityReason = "court_inactive"
)
