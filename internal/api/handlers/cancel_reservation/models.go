package cancel_reservation

import (
	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(userID int64, role domain.Role) *models.CancelReservationRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelReservationRequest{
		UserID:             userID,
		Role:               role,
		CancellationReason: reason,
	}
}
