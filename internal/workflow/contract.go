package workflow

import (
	"context"

	"github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	"github.com/rameshwari28/QuickCourt/internal/usecase/check_availability"
	"github.com/rameshwari28/QuickCourt/internal/usecase/create_reservation"
)

// AvailabilityChecker интерфейс проверки доступности интервала
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check_availability.Request) (*check_availability.Response, error)
}

// ReservationCreator интерфейс создания бронирования
type ReservationCreator interface {
	Execute(ctx context.Context, req *create_reservation.Request) (*create_reservation.Response, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetCourt(ctx context.Context, courtID int64) (*venueservice.Court, error)
}

// Publisher интерфейс публикации событий подтверждённых бронирований.
// Потребители (уведомления, платежи) живут за пределами этого сервиса
type Publisher interface {
	PublishConfirmed(ctx context.Context, event ConfirmationEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
