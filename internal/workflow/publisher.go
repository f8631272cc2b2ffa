package workflow

import (
	"context"

	"github.com/google/uuid"
)

// ConfirmationEvent событие об успешно созданном бронировании
type ConfirmationEvent struct {
	SessionID     uuid.UUID `json:"sessionId"`
	ReservationID int64     `json:"reservationId"`
	UserID        int64     `json:"userId"`
	VenueID       int64     `json:"venueId"`
	CourtID       int64     `json:"courtId"`
	Date          string    `json:"date"`      // "2025-10-15"
	StartTime     string    `json:"startTime"` // "10:00"
	EndTime       string    `json:"endTime"`   // "11:00"
	TotalPrice    float64   `json:"totalPrice"`
}

// LogPublisher публикует события подтверждения в лог.
// Заглушка на месте реального брокера: уведомления и платежи
// живут в других сервисах
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher создает публикатора событий в лог
func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishConfirmed(_ context.Context, event ConfirmationEvent) error {
	p.logger.Info("reservation confirmed: id=%d user=%d court=%d date=%s %s-%s price=%.2f",
		event.ReservationID, event.UserID, event.CourtID, event.Date,
		event.StartTime, event.EndTime, event.TotalPrice)
	return nil
}
