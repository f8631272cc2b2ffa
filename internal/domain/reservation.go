package domain

import (
	"time"

	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// ReservationStatus represents the status of a court reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation represents a confirmed court booking in the system
type Reservation struct {
	ID              int64
	UserID          int64
	VenueID         int64
	CourtID         int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          ReservationStatus
	TotalPrice      float64

	// Denormalized data for history
	CourtName string
	VenueName string
	SportType string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the reservation occupies its interval
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeCancelled returns true if the reservation is still in a cancellable state
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// StartsAt returns the absolute start moment of the reservation
func (r *Reservation) StartsAt() (time.Time, error) {
	return r.StartTime.ToTime(r.Date)
}

// EndsAt returns the absolute end moment of the reservation
func (r *Reservation) EndsAt() (time.Time, error) {
	return r.EndTime.ToTime(r.Date)
}

// HasStarted returns true if the reservation start moment is not after now
func (r *Reservation) HasStarted(now time.Time) bool {
	start, err := r.StartsAt()
	if err != nil {
		return false
	}
	return !now.Before(start)
}

// EffectiveStatus reclassifies a confirmed reservation as completed once its
// end moment has elapsed. Computed at read time, never written back.
// Cancellation always wins over completion.
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.Status != StatusConfirmed {
		return r.Status
	}
	end, err := r.EndsAt()
	if err != nil {
		return r.Status
	}
	if !now.Before(end) {
		return StatusCompleted
	}
	return StatusConfirmed
}

// Overlaps reports whether the half-open interval [start, end) intersects
// the reservation's own [StartTime, EndTime). Intervals [a,b) and [c,d)
// intersect iff a < d && c < b, so back-to-back reservations do not overlap.
func (r *Reservation) Overlaps(start, end types.TimeString) bool {
	return r.StartTime.IsBefore(end) && start.IsBefore(r.EndTime)
}

// UserReservationsFilter фильтр списка бронирований пользователя
type UserReservationsFilter string

const (
	FilterAll       UserReservationsFilter = "all"
	FilterUpcoming  UserReservationsFilter = "upcoming"
	FilterPast      UserReservationsFilter = "past"
	FilterConfirmed UserReservationsFilter = "confirmed"
	FilterCancelled UserReservationsFilter = "cancelled"
)

// Valid проверяет, что значение фильтра допустимо
func (f UserReservationsFilter) Valid() bool {
	switch f {
	case FilterAll, FilterUpcoming, FilterPast, FilterConfirmed, FilterCancelled:
		return true
	default:
		return false
	}
}

// VenueReservationsFilter фильтр для получения бронирований площадки
type VenueReservationsFilter struct {
	VenueID          int64              // Обязательный параметр
	CourtID          *int64             // Фильтр по корту (опционально, если nil - все корты)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *ReservationStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые бронирования
}
