package check_availability

import (
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// Request модель запроса проверки доступности интервала
type Request struct {
	CourtID         int64            // ID корта
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала интервала
	DurationMinutes int              // Длительность, положительное кратное гранулярности
}

// Response результат проверки доступности
// Reason заполнен только при Available = false
type Response struct {
	Available bool
	Reason    *domain.AvailabilityReason
}

// unavailable собирает отрицательный ответ с причиной
func unavailable(reason domain.AvailabilityReason) *Response {
	return &Response{Available: false, Reason: &reason}
}
