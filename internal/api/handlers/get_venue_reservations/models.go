package get_venue_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/service/reservations/models"
	"github.com/rameshwari28/QuickCourt/pkg/ptr"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	venueID int64,
	userID int64,
	role domain.Role,
	courtIDStr string,
	statusStr string,
	dateStr string,
	includeCancelledStr string,
) (*models.GetVenueReservationsRequest, error) {
	req := &models.GetVenueReservationsRequest{
		UserID:           userID,
		Role:             role,
		VenueID:          venueID,
		IncludeCancelled: false, // По умолчанию только активные
	}

	// Парсим courtId если указан
	if courtIDStr != "" {
		courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CourtID = ptr.Ptr(courtID)
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	// Парсим date если указана
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = ptr.Ptr(date)
		req.EndDate = ptr.Ptr(date)
	}

	// Парсим includeCancelled если указан
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
