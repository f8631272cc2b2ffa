package get_available_slots

import (
	"github.com/rameshwari28/QuickCourt/internal/domain"
	getAvailableSlots "github.com/rameshwari28/QuickCourt/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	IsAvailable     bool   `json:"isAvailable"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CourtID            int64          `json:"courtId"`
	VenueID            int64          `json:"venueId"`
	Date               string         `json:"date"` // "2025-10-15"
	GranularityMinutes int            `json:"granularityMinutes"`
	Slots              []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			IsAvailable:     slot.IsAvailable,
		}
	}

	return &AvailableSlotsResponse{
		CourtID:            resp.CourtID,
		VenueID:            resp.VenueID,
		Date:               resp.Date.Format(domain.DateFormat),
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}
