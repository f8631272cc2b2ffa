package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rameshwari28/QuickCourt/pkg/types"
)

func confirmedReservation(start, end string) *Reservation {
	return &Reservation{
		ID:        1,
		Date:      time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    StatusConfirmed,
	}
}

func TestReservation_Overlaps(t *testing.T) {
	res := confirmedReservation("10:00", "11:00")

	// Полуинтервалы: встык идущие бронирования не пересекаются
	assert.False(t, res.Overlaps(types.TimeString("09:00"), types.TimeString("10:00")))
	assert.False(t, res.Overlaps(types.TimeString("11:00"), types.TimeString("12:00")))

	// Частичные и полные пересечения
	assert.True(t, res.Overlaps(types.TimeString("10:30"), types.TimeString("11:30")))
	assert.True(t, res.Overlaps(types.TimeString("09:30"), types.TimeString("10:30")))
	assert.True(t, res.Overlaps(types.TimeString("10:00"), types.TimeString("11:00")))
	assert.True(t, res.Overlaps(types.TimeString("09:00"), types.TimeString("12:00")))
}

func TestReservation_EffectiveStatus(t *testing.T) {
	res := confirmedReservation("10:00", "11:00")

	// До окончания - confirmed
	before := time.Date(2025, 1, 20, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, StatusConfirmed, res.EffectiveStatus(before))

	// После окончания confirmed становится completed (вычисляется на чтении)
	after := time.Date(2025, 1, 20, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusCompleted, res.EffectiveStatus(after))

	// Отмена всегда побеждает завершение
	cancelled := confirmedReservation("10:00", "11:00")
	cancelled.Status = StatusCancelled
	assert.Equal(t, StatusCancelled, cancelled.EffectiveStatus(after))
}

func TestReservation_HasStarted(t *testing.T) {
	res := confirmedReservation("10:00", "11:00")

	assert.False(t, res.HasStarted(time.Date(2025, 1, 20, 9, 59, 0, 0, time.UTC)))
	assert.True(t, res.HasStarted(time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)))
	assert.True(t, res.HasStarted(time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)))
}

func TestReservation_CanBeCancelled(t *testing.T) {
	res := confirmedReservation("10:00", "11:00")
	assert.True(t, res.CanBeCancelled())

	res.Status = StatusCancelled
	assert.False(t, res.CanBeCancelled())

	res.Status = StatusCompleted
	assert.False(t, res.CanBeCancelled())
}

func TestUserReservationsFilter_Valid(t *testing.T) {
	assert.True(t, FilterAll.Valid())
	assert.True(t, FilterUpcoming.Valid())
	assert.True(t, FilterPast.Valid())
	assert.True(t, FilterConfirmed.Valid())
	assert.True(t, FilterCancelled.Valid())
	assert.False(t, UserReservationsFilter("unknown").Valid())
}

func TestRole_CanManageVenue(t *testing.T) {
	// Админ управляет любой площадкой
	assert.True(t, RoleAdmin.CanManageVenue(1, 99))

	// Владелец - только своей
	assert.True(t, RoleFacilityOwner.CanManageVenue(42, 42))
	assert.False(t, RoleFacilityOwner.CanManageVenue(42, 99))

	// Обычный пользователь - никакой
	assert.False(t, RoleUser.CanManageVenue(42, 42))
}

func TestBookingPolicy_ValidDuration(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.ValidDuration(30))
	assert.True(t, policy.ValidDuration(60))
	assert.True(t, policy.ValidDuration(240))

	assert.False(t, policy.ValidDuration(0))
	assert.False(t, policy.ValidDuration(-30))
	assert.False(t, policy.ValidDuration(45))
	assert.False(t, policy.ValidDuration(270))
}
