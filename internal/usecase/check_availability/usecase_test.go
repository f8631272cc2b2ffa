package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

type fakeRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeRepo) GetByCourtAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.reservations, f.err
}

type fakeVenueClient struct {
	court *venueservice.Court
	err   error
}

func (f *fakeVenueClient) GetCourt(_ context.Context, _ int64) (*venueservice.Court, error) {
	return f.court, f.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testCourt(openHours venueservice.OperatingHours) *venueservice.Court {
	return &venueservice.Court{
		ID:             1,
		VenueID:        10,
		Name:           "Корт 1",
		SportType:      "badminton",
		PricePerHour:   500,
		OperatingHours: openHours,
		IsActive:       true,
	}
}

func newTestUseCase(repo *fakeRepo, client *fakeVenueClient) *UseCase {
	uc := NewUseCase(repo, client, domain.DefaultPolicy(), nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2025, 1, 19, 12, 0, 0, 0, time.UTC)}
	return uc
}

func testRequest(start string, duration int) *Request {
	return &Request{
		CourtID:         1,
		Date:            time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
	}
}

func TestExecute_OutOfHours(t *testing.T) {
	// Рабочие часы 06:00-09:00, запрос на 10:00
	client := &fakeVenueClient{court: testCourt(venueservice.OperatingHours{Start: "06:00", End: "09:00"})}
	uc := newTestUseCase(&fakeRepo{}, client)

	resp, err := uc.Execute(context.Background(), testRequest("10:00", 60))
	require.NoError(t, err)

	assert.False(t, resp.Available)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, domain.ReasonOutOfHours, *resp.Reason)
}

func TestExecute_IntervalEndPastClose(t *testing.T) {
	// Начало внутри часов, но конец выходит за закрытие
	client := &fakeVenueClient{court: testCourt(venueservice.OperatingHours{Start: "06:00", End: "09:00"})}
	uc := newTestUseCase(&fakeRepo{}, client)

	resp, err := uc.Execute(context.Background(), testRequest("08:30", 60))
	require.NoError(t, err)

	assert.False(t, resp.Available)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, domain.ReasonOutOfHours, *resp.Reason)
}

func TestExecute_Overlap(t *testing.T) {
	client := &fakeVenueClient{court: testCourt(venueservice.OperatingHours{Start: "06:00", End: "23:00"})}
	repo := &fakeRepo{reservations: []*domain.Reservation{
		{
			ID:        7,
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("11:00"),
			Status:    domain.StatusConfirmed,
		},
	}}
	uc := newTestUseCase(repo, client)

	resp, err := uc.Execute(context.Background(), testRequest("10:30", 60))
	require.NoError(t, err)

	assert.False(t, resp.Available)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, domain.ReasonOverlap, *resp.Reason)
}

func TestExecute_AdjacentIntervalAvailable(t *testing.T) {
	client := &fakeVenueClient{court: testCourt(venueservice.OperatingHours{Start: "06:00", End: "23:00"})}
	repo := &fakeRepo{reservations: []*domain.Reservation{
		{
			ID:        7,
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("11:00"),
			Status:    domain.StatusConfirmed,
		},
	}}
	uc := newTestUseCase(repo, client)

	// Встык после существующего бронирования - доступно
	resp, err := uc.Execute(context.Background(), testRequest("11:00", 60))
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Nil(t, resp.Reason)
}

func TestExecute_InactiveCourt(t *testing.T) {
	court := testCourt(venueservice.OperatingHours{Start: "06:00", End: "23:00"})
	court.IsActive = false
	uc := newTestUseCase(&fakeRepo{}, &fakeVenueClient{court: court})

	resp, err := uc.Execute(context.Background(), testRequest("10:00", 60))
	require.NoError(t, err)

	assert.False(t, resp.Available)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, domain.ReasonCourtInactive, *resp.Reason)
}

func TestExecute_CourtNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeVenueClient{err: venueservice.ErrCourtNotFound})

	_, err := uc.Execute(context.Background(), testRequest("10:00", 60))
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	client := &fakeVenueClient{court: testCourt(venueservice.OperatingHours{Start: "06:00", End: "23:00"})}
	uc := newTestUseCase(&fakeRepo{}, client)

	req := testRequest("10:00", 60)
	req.Date = time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidDuration(t *testing.T) {
	client := &fakeVenueClient{court: testCourt(venueservice.OperatingHours{Start: "06:00", End: "23:00"})}
	uc := newTestUseCase(&fakeRepo{}, client)

	// Не кратно гранулярности
	_, err := uc.Execute(context.Background(), testRequest("10:00", 45))
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Больше максимума
	_, err = uc.Execute(context.Background(), testRequest("10:00", 300))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidOperatingHours(t *testing.T) {
	// Открытие позже закрытия - ошибка конфигурации каталога
	client := &fakeVenueClient{court: testCourt(venueservice.OperatingHours{Start: "23:00", End: "06:00"})}
	uc := newTestUseCase(&fakeRepo{}, client)

	_, err := uc.Execute(context.Background(), testRequest("10:00", 60))
	assert.ErrorIs(t, err, ErrInvalidRange)
}
