package get_available_slots

import (
	"context"
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetByCourtAndDate получает подтверждённые бронирования корта на дату
	GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Reservation, error)
}

// VenueServiceClient интерфейс клиента каталога площадок
type VenueServiceClient interface {
	GetCourt(ctx context.Context, courtID int64) (*venueservice.Court, error)
}

// SlotsCache кэш вычисленной доступности по ключу (корт, дата)
type SlotsCache interface {
	GetSlots(ctx context.Context, courtID int64, date time.Time) ([]domain.AvailableSlot, bool, error)
	SetSlots(ctx context.Context, courtID int64, date time.Time, slots []domain.AvailableSlot) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
