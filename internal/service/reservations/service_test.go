package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	reservationRepo "github.com/rameshwari28/QuickCourt/internal/infra/storage/reservation"
	venueClient "github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	"github.com/rameshwari28/QuickCourt/internal/service/reservations/models"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

type fakeRepo struct {
	byID        map[int64]*domain.Reservation
	byUser      []*domain.Reservation
	cancelled   map[int64]string
	getErr      error
	cancelErr   error
	venueResult []*domain.Reservation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:      make(map[int64]*domain.Reservation),
		cancelled: make(map[int64]string),
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range f.byUser {
		if res.UserID != userID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	return f.venueResult, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled[id] = reason
	return nil
}

type fakeVenueServiceClient struct {
	venue    *venueClient.Venue
	err      error
	getCalls int
}

func (f *fakeVenueServiceClient) GetVenue(_ context.Context, _ int64) (*venueClient.Venue, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.venue, nil
}

type fakeSlotsCache struct {
	invalidated int
}

func (f *fakeSlotsCache) Invalidate(_ context.Context, _ int64, _ time.Time) error {
	f.invalidated++
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фиксированное "сейчас": 2025-01-19 12:00 UTC
var testNow = time.Date(2025, 1, 19, 12, 0, 0, 0, time.UTC)

func testReservation(id, userID int64, date time.Time, start, end string) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		UserID:          userID,
		VenueID:         10,
		CourtID:         1,
		Date:            date,
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		TotalPrice:      500,
		CourtName:       "Корт 1",
		VenueName:       "Арена",
		SportType:       "badminton",
	}
}

func newTestService(repo *fakeRepo, client *fakeVenueServiceClient, cache *fakeSlotsCache) *Service {
	return NewService(repo, client, cache, fixedTime{t: testNow}, nopLogger{})
}

func TestGetByID_Owner(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = testReservation(1, 42, testNow.AddDate(0, 0, 1), "10:00", "11:00")
	svc := newTestService(repo, &fakeVenueServiceClient{}, &fakeSlotsCache{})

	resp, err := svc.GetByID(context.Background(), 1, 42, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeVenueServiceClient{}, &fakeSlotsCache{})

	_, err := svc.GetByID(context.Background(), 99, 42, domain.RoleUser)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetByID_ForeignUserDenied(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = testReservation(1, 42, testNow.AddDate(0, 0, 1), "10:00", "11:00")
	client := &fakeVenueServiceClient{venue: &venueClient.Venue{ID: 10, OwnerID: 100}}
	svc := newTestService(repo, client, &fakeSlotsCache{})

	_, err := svc.GetByID(context.Background(), 1, 7, domain.RoleUser)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_VenueOwnerAllowed(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = testReservation(1, 42, testNow.AddDate(0, 0, 1), "10:00", "11:00")
	client := &fakeVenueServiceClient{venue: &venueClient.Venue{ID: 10, OwnerID: 100}}
	svc := newTestService(repo, client, &fakeSlotsCache{})

	resp, err := svc.GetByID(context.Background(), 1, 100, domain.RoleFacilityOwner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetUserReservations_TemporalFilters(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	tomorrow := testNow.AddDate(0, 0, 1)

	repo := newFakeRepo()
	repo.byUser = []*domain.Reservation{
		testReservation(1, 42, yesterday, "10:00", "11:00"), // прошло
		testReservation(2, 42, tomorrow, "10:00", "11:00"),  // предстоит
	}
	svc := newTestService(repo, &fakeVenueServiceClient{}, &fakeSlotsCache{})

	upcoming, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 42, Filter: "upcoming"})
	require.NoError(t, err)
	require.Len(t, upcoming.Reservations, 1)
	assert.Equal(t, int64(2), upcoming.Reservations[0].ID)

	past, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 42, Filter: "past"})
	require.NoError(t, err)
	require.Len(t, past.Reservations, 1)
	assert.Equal(t, int64(1), past.Reservations[0].ID)

	// Завершившееся бронирование отдаётся со статусом completed,
	// хотя в хранилище оно остаётся confirmed
	assert.Equal(t, string(domain.StatusCompleted), past.Reservations[0].Status)
}

func TestGetUserReservations_TemporalSplitByStartMoment(t *testing.T) {
	today := testNow.Truncate(24 * time.Hour)
	tomorrow := testNow.AddDate(0, 0, 1)

	// Идёт прямо сейчас: началось в 11:00, "сейчас" 12:00
	inProgress := testReservation(1, 42, today, "11:00", "13:00")

	cancelled := testReservation(2, 42, tomorrow, "10:00", "11:00")
	cancelled.Status = domain.StatusCancelled

	repo := newFakeRepo()
	repo.byUser = []*domain.Reservation{inProgress, cancelled}
	svc := newTestService(repo, &fakeVenueServiceClient{}, &fakeSlotsCache{})

	// Начавшееся бронирование уже в прошлом, даже если оно ещё идёт
	past, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 42, Filter: "past"})
	require.NoError(t, err)
	require.Len(t, past.Reservations, 1)
	assert.Equal(t, int64(1), past.Reservations[0].ID)

	// Отменённые не выпадают из временных выборок
	upcoming, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 42, Filter: "upcoming"})
	require.NoError(t, err)
	require.Len(t, upcoming.Reservations, 1)
	assert.Equal(t, int64(2), upcoming.Reservations[0].ID)
	assert.Equal(t, string(domain.StatusCancelled), upcoming.Reservations[0].Status)
}

func TestGetUserReservations_StatusFilter(t *testing.T) {
	tomorrow := testNow.AddDate(0, 0, 1)

	cancelled := testReservation(3, 42, tomorrow, "12:00", "13:00")
	cancelled.Status = domain.StatusCancelled

	repo := newFakeRepo()
	repo.byUser = []*domain.Reservation{
		testReservation(2, 42, tomorrow, "10:00", "11:00"),
		cancelled,
	}
	svc := newTestService(repo, &fakeVenueServiceClient{}, &fakeSlotsCache{})

	resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 42, Filter: "cancelled"})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(3), resp.Reservations[0].ID)
}

func TestGetUserReservations_InvalidFilter(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeVenueServiceClient{}, &fakeSlotsCache{})

	_, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 42, Filter: "pending"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetVenueReservations_OwnerAllowed(t *testing.T) {
	repo := newFakeRepo()
	repo.venueResult = []*domain.Reservation{
		testReservation(1, 42, testNow.AddDate(0, 0, 1), "10:00", "11:00"),
	}
	client := &fakeVenueServiceClient{venue: &venueClient.Venue{ID: 10, OwnerID: 100}}
	svc := newTestService(repo, client, &fakeSlotsCache{})

	resp, err := svc.GetVenueReservations(context.Background(), &models.GetVenueReservationsRequest{
		UserID:  100,
		Role:    domain.RoleFacilityOwner,
		VenueID: 10,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
}

func TestGetVenueReservations_ForeignOwnerDenied(t *testing.T) {
	client := &fakeVenueServiceClient{venue: &venueClient.Venue{ID: 10, OwnerID: 100}}
	svc := newTestService(newFakeRepo(), client, &fakeSlotsCache{})

	_, err := svc.GetVenueReservations(context.Background(), &models.GetVenueReservationsRequest{
		UserID:  7,
		Role:    domain.RoleFacilityOwner,
		VenueID: 10,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetVenueReservations_AdminSkipsVenueLookup(t *testing.T) {
	client := &fakeVenueServiceClient{}
	svc := newTestService(newFakeRepo(), client, &fakeSlotsCache{})

	_, err := svc.GetVenueReservations(context.Background(), &models.GetVenueReservationsRequest{
		UserID:  7,
		Role:    domain.RoleAdmin,
		VenueID: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, client.getCalls)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = testReservation(1, 42, testNow.AddDate(0, 0, 1), "10:00", "11:00")
	cache := &fakeSlotsCache{}
	svc := newTestService(repo, &fakeVenueServiceClient{}, cache)

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:             42,
		Role:               domain.RoleUser,
		CancellationReason: "планы изменились",
	})
	require.NoError(t, err)

	assert.Equal(t, "планы изменились", repo.cancelled[1])
	assert.Equal(t, 1, cache.invalidated)
}

func TestCancel_AlreadyStarted(t *testing.T) {
	repo := newFakeRepo()
	// Бронирование на сегодня, началось в 11:00 - "сейчас" 12:00
	repo.byID[1] = testReservation(1, 42, testNow.Truncate(24*time.Hour), "11:00", "13:00")
	svc := newTestService(repo, &fakeVenueServiceClient{}, &fakeSlotsCache{})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID: 42,
		Role:   domain.RoleUser,
	})
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := newFakeRepo()
	res := testReservation(1, 42, testNow.AddDate(0, 0, 1), "10:00", "11:00")
	res.Status = domain.StatusCancelled
	repo.byID[1] = res
	svc := newTestService(repo, &fakeVenueServiceClient{}, &fakeSlotsCache{})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID: 42,
		Role:   domain.RoleUser,
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_ForeignUserDenied(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = testReservation(1, 42, testNow.AddDate(0, 0, 1), "10:00", "11:00")
	client := &fakeVenueServiceClient{venue: &venueClient.Venue{ID: 10, OwnerID: 100}}
	svc := newTestService(repo, client, &fakeSlotsCache{})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID: 7,
		Role:   domain.RoleUser,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_ByAdminWithoutVenueLookup(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = testReservation(1, 42, testNow.AddDate(0, 0, 1), "10:00", "11:00")
	client := &fakeVenueServiceClient{}
	svc := newTestService(repo, client, &fakeSlotsCache{})

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:             7,
		Role:               domain.RoleAdmin,
		CancellationReason: "нарушение правил площадки",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, client.getCalls)
	assert.Equal(t, "нарушение правил площадки", repo.cancelled[1])
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeVenueServiceClient{}, &fakeSlotsCache{})

	err := svc.Cancel(context.Background(), 99, &models.CancelReservationRequest{
		UserID: 42,
		Role:   domain.RoleUser,
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
