package booking_session

import (
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/workflow"
)

// SelectDateRequest HTTP request model
type SelectDateRequest struct {
	Date string `json:"date"` // "2025-10-15"
}

// SelectCourtRequest HTTP request model
type SelectCourtRequest struct {
	CourtID int64 `json:"courtId"`
}

// SelectSlotRequest HTTP request model
type SelectSlotRequest struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// ReservationResult созданное бронирование в ответе сессии
type ReservationResult struct {
	ID         int64   `json:"id"`
	VenueID    int64   `json:"venueId"`
	CourtID    int64   `json:"courtId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
}

// SessionResponse HTTP модель состояния сессии бронирования
type SessionResponse struct {
	SessionID       string             `json:"sessionId"`
	State           string             `json:"state"`
	RejectReason    string             `json:"rejectReason,omitempty"`
	Date            string             `json:"date,omitempty"`
	CourtID         int64              `json:"courtId,omitempty"`
	VenueID         int64              `json:"venueId,omitempty"`
	StartTime       string             `json:"startTime,omitempty"`
	DurationMinutes int                `json:"durationMinutes,omitempty"`
	Reservation     *ReservationResult `json:"reservation,omitempty"`
}

// FromSnapshot конвертирует снимок сессии в HTTP response
func FromSnapshot(snap *workflow.Snapshot) *SessionResponse {
	resp := &SessionResponse{
		SessionID:       snap.ID.String(),
		State:           string(snap.State),
		RejectReason:    string(snap.RejectReason),
		CourtID:         snap.CourtID,
		VenueID:         snap.VenueID,
		StartTime:       snap.StartTime.String(),
		DurationMinutes: snap.DurationMinutes,
	}

	if !snap.Date.IsZero() {
		resp.Date = snap.Date.Format(domain.DateFormat)
	}

	if snap.Result != nil {
		resp.Reservation = &ReservationResult{
			ID:         snap.Result.ID,
			VenueID:    snap.Result.VenueID,
			CourtID:    snap.Result.CourtID,
			Date:       snap.Result.Date.Format(domain.DateFormat),
			StartTime:  snap.Result.StartTime.String(),
			EndTime:    snap.Result.EndTime.String(),
			Status:     snap.Result.Status,
			TotalPrice: snap.Result.TotalPrice,
		}
	}

	return resp
}

// ParseDate парсит дату из запроса выбора даты
func (r *SelectDateRequest) ParseDate() (time.Time, error) {
	return time.Parse(domain.DateFormat, r.Date)
}
