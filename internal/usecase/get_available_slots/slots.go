package get_available_slots

import (
	"fmt"
	"time"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// generateSlotTimes генерирует упорядоченный список времён начала слотов
// от открытия (включительно) до закрытия (исключительно) с шагом granularity.
// Слот, конец которого выходит за время закрытия, не генерируется.
//
// Чистая функция без состояния: календарь слотов детерминированно выводится
// из рабочих часов и гранулярности.
func generateSlotTimes(open, close types.TimeString, granularityMinutes int) ([]types.TimeString, error) {
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity %d minutes", ErrInvalidRange, granularityMinutes)
	}
	if !open.IsBefore(close) {
		return nil, fmt.Errorf("%w: open %s >= close %s", ErrInvalidRange, open, close)
	}

	slots := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		slotEnd, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			// Конец слота перевалил за полночь - дальше слотов нет
			break
		}
		if slotEnd.IsAfter(close) {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// markAvailability отмечает занятость каждого слота по подтверждённым бронированиям
// Слот занят, если его полуинтервал [start, start+granularity) пересекается
// с полуинтервалом хотя бы одного подтверждённого бронирования
func markAvailability(
	slotTimes []types.TimeString,
	granularityMinutes int,
	reservations []*domain.Reservation,
) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, len(slotTimes))

	for i, start := range slotTimes {
		available := true

		slotEnd, err := start.AddMinutes(granularityMinutes)
		if err == nil {
			for _, res := range reservations {
				if !res.IsConfirmed() {
					continue
				}
				if res.Overlaps(start, slotEnd) {
					available = false
					break
				}
			}
		}

		result[i] = domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: granularityMinutes,
			IsAvailable:     available,
		}
	}

	return result
}

// applyNoticeFilter для бронирований на сегодня скрывает слоты, начинающиеся
// раньше, чем now + minBookingNoticeMinutes
func applyNoticeFilter(
	slots []domain.AvailableSlot,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) []domain.AvailableSlot {
	if !isSameDay(requestDate, now) {
		return slots
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// Минимально допустимое время за полночь - сегодня слотов не осталось
		return []domain.AvailableSlot{}
	}

	filtered := make([]domain.AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.IsBefore(minAllowed) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
