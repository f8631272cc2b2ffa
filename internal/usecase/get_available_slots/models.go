package get_available_slots

import (
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID  int64     // ID пользователя (для логирования, не влияет на результат)
	CourtID int64     // ID корта
	Date    time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов корта на дату
type Response struct {
	CourtID            int64                  // ID корта
	VenueID            int64                  // ID площадки
	Date               time.Time              // Дата, на которую запрашивались слоты
	GranularityMinutes int                    // Шаг календаря
	Slots              []domain.AvailableSlot // Все слоты дня с признаком доступности
}
