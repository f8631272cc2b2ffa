package booking_session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/workflow"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// SessionManager интерфейс менеджера сессий пошагового бронирования
type SessionManager interface {
	StartSession(userID int64, role domain.Role) (*workflow.Snapshot, error)
	SelectDate(ctx context.Context, sessionID uuid.UUID, date time.Time) (*workflow.Snapshot, error)
	SelectCourt(ctx context.Context, sessionID uuid.UUID, courtID int64) (*workflow.Snapshot, error)
	SelectSlot(ctx context.Context, sessionID uuid.UUID, startTime types.TimeString, durationMinutes int) (*workflow.Snapshot, error)
	Confirm(ctx context.Context, sessionID uuid.UUID) (*workflow.Snapshot, error)
	GetSession(sessionID uuid.UUID) (*workflow.Snapshot, error)
	CloseSession(sessionID uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
