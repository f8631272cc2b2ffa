package check_availability

import (
	"strconv"
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	checkAvailability "github.com/rameshwari28/QuickCourt/internal/usecase/check_availability"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available bool    `json:"available"`
	Reason    *string `json:"reason,omitempty"` // out_of_hours | overlap | court_inactive
}

// ToUseCaseRequest собирает запрос use case из query параметров
func ToUseCaseRequest(courtID int64, dateStr, startTimeStr, durationStr string) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(startTimeStr)
	if err != nil {
		return nil, err
	}

	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		CourtID:         courtID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{Available: resp.Available}
	if resp.Reason != nil {
		reason := string(*resp.Reason)
		out.Reason = &reason
	}
	return out
}
