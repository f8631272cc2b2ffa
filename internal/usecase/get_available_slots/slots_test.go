package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

func TestGenerateSlotTimes(t *testing.T) {
	slots, err := generateSlotTimes(types.TimeString("06:00"), types.TimeString("09:00"), 30)
	require.NoError(t, err)

	expected := []types.TimeString{"06:00", "06:30", "07:00", "07:30", "08:00", "08:30"}
	assert.Equal(t, expected, slots)
}

func TestGenerateSlotTimes_SlotMustFitBeforeClose(t *testing.T) {
	// Последний слот 08:00-09:00 помещается, 09:00-10:00 уже нет
	slots, err := generateSlotTimes(types.TimeString("06:00"), types.TimeString("09:30"), 60)
	require.NoError(t, err)

	expected := []types.TimeString{"06:00", "07:00", "08:00"}
	assert.Equal(t, expected, slots)
}

func TestGenerateSlotTimes_InvalidRange(t *testing.T) {
	// Открытие позже закрытия - ошибка конфигурации
	_, err := generateSlotTimes(types.TimeString("09:00"), types.TimeString("06:00"), 30)
	assert.ErrorIs(t, err, ErrInvalidRange)

	// Открытие равно закрытию
	_, err = generateSlotTimes(types.TimeString("09:00"), types.TimeString("09:00"), 30)
	assert.ErrorIs(t, err, ErrInvalidRange)

	// Нулевая и отрицательная гранулярность
	_, err = generateSlotTimes(types.TimeString("06:00"), types.TimeString("09:00"), 0)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = generateSlotTimes(types.TimeString("06:00"), types.TimeString("09:00"), -30)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestMarkAvailability(t *testing.T) {
	slotTimes := []types.TimeString{"09:30", "10:00", "10:30", "11:00"}
	reservations := []*domain.Reservation{
		{
			ID:        1,
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("11:00"),
			Status:    domain.StatusConfirmed,
		},
	}

	slots := markAvailability(slotTimes, 30, reservations)
	require.Len(t, slots, 4)

	// 09:30-10:00 не пересекается (встык)
	assert.True(t, slots[0].IsAvailable)

	// 10:00-10:30 и 10:30-11:00 заняты бронированием 10:00-11:00
	assert.False(t, slots[1].IsAvailable)
	assert.False(t, slots[2].IsAvailable)

	// 11:00-11:30 не пересекается (встык)
	assert.True(t, slots[3].IsAvailable)
}

func TestMarkAvailability_CancelledReservationDoesNotBlock(t *testing.T) {
	slotTimes := []types.TimeString{"10:00"}
	reservations := []*domain.Reservation{
		{
			ID:        1,
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("11:00"),
			Status:    domain.StatusCancelled,
		},
	}

	slots := markAvailability(slotTimes, 30, reservations)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].IsAvailable)
}

func TestApplyNoticeFilter_Today(t *testing.T) {
	date := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)

	slots := []domain.AvailableSlot{
		{StartTime: types.TimeString("09:30"), DurationMinutes: 30, IsAvailable: true},
		{StartTime: types.TimeString("10:30"), DurationMinutes: 30, IsAvailable: true},
		{StartTime: types.TimeString("11:00"), DurationMinutes: 30, IsAvailable: true},
	}

	// minBookingNotice 30 минут: остаются слоты с 10:30
	filtered := applyNoticeFilter(slots, date, now, 30)
	require.Len(t, filtered, 2)
	assert.Equal(t, types.TimeString("10:30"), filtered[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), filtered[1].StartTime)
}

func TestApplyNoticeFilter_FutureDateUntouched(t *testing.T) {
	date := time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 20, 23, 0, 0, 0, time.UTC)

	slots := []domain.AvailableSlot{
		{StartTime: types.TimeString("06:00"), DurationMinutes: 30, IsAvailable: true},
	}

	filtered := applyNoticeFilter(slots, date, now, 120)
	assert.Equal(t, slots, filtered)
}
