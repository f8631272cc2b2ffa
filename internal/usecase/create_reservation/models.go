package create_reservation

import (
	"time"

	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// Request модель запроса на создание бронирования
// Эфемерна: потребляется один раз и при отказе нигде не сохраняется
type Request struct {
	UserID          int64            // ID аутентифицированного пользователя
	CourtID         int64            // ID корта
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes int              // Длительность, положительное кратное гранулярности
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	UserID          int64            // ID пользователя
	VenueID         int64            // ID площадки
	CourtID         int64            // ID корта
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время конца (start + duration)
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	TotalPrice      float64          // Итоговая цена

	// Денормализованные данные для истории
	CourtName string // Название корта
	VenueName string // Название площадки
	SportType string // Вид спорта

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
