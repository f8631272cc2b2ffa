package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rameshwari28/QuickCourt/internal/domain"
	"github.com/rameshwari28/QuickCourt/internal/integrations/venueservice"
	"github.com/rameshwari28/QuickCourt/pkg/simpletxmanager"
	"github.com/rameshwari28/QuickCourt/pkg/types"
)

// fakeRepo хранит бронирования в памяти.
// Потокобезопасность обеспечивает fakeTxManager, сериализующий транзакции
type fakeRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
}

func (f *fakeRepo) GetByCourtAndDate(_ context.Context, courtID int64, date time.Time) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.Reservation
	for _, res := range f.reservations {
		if res.CourtID == courtID && res.Date.Equal(date) && res.IsConfirmed() {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *res
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.reservations = append(f.reservations, &created)
	return &created, nil
}

type fakeVenueClient struct {
	venue *venueservice.Venue
	court *venueservice.Court
}

func (f *fakeVenueClient) GetVenue(_ context.Context, _ int64) (*venueservice.Venue, error) {
	return f.venue, nil
}

func (f *fakeVenueClient) GetCourt(_ context.Context, _ int64) (*venueservice.Court, error) {
	return f.court, nil
}

// fakeTxManager сериализует транзакции мьютексом, имитируя
// взаимное исключение на уровне (корт, дата)
type fakeTxManager struct {
	mu  sync.Mutex
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeCache struct {
	mu          sync.Mutex
	invalidated int
}

func (f *fakeCache) Invalidate(_ context.Context, _ int64, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testClient() *fakeVenueClient {
	return &fakeVenueClient{
		venue: &venueservice.Venue{
			ID:         10,
			OwnerID:    100,
			Name:       "Арена",
			IsApproved: true,
		},
		court: &venueservice.Court{
			ID:             1,
			VenueID:        10,
			Name:           "Корт 1",
			SportType:      "badminton",
			PricePerHour:   500,
			OperatingHours: venueservice.OperatingHours{Start: "06:00", End: "23:00"},
			IsActive:       true,
		},
	}
}

func newTestUseCase(repo *fakeRepo, client *fakeVenueClient, cache *fakeCache, txMgr *fakeTxManager) *UseCase {
	uc := NewUseCase(repo, client, cache, txMgr, domain.DefaultPolicy(), 5*time.Second, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2025, 1, 19, 12, 0, 0, 0, time.UTC)}
	return uc
}

func testRequest(userID int64, start string, duration int) *Request {
	return &Request{
		UserID:          userID,
		CourtID:         1,
		Date:            time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	uc := newTestUseCase(repo, testClient(), cache, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), testRequest(1, "10:00", 60))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Цена: 500/час x 1 час
	assert.Equal(t, 500.0, resp.TotalPrice)

	// Денормализация каталога
	assert.Equal(t, "Корт 1", resp.CourtName)
	assert.Equal(t, "Арена", resp.VenueName)
	assert.Equal(t, "badminton", resp.SportType)

	// Кэш доступности инвалидирован
	assert.Equal(t, 1, cache.invalidated)
}

func TestExecute_PriceProportionalToDuration(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testClient(), &fakeCache{}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), testRequest(1, "10:00", 90))
	require.NoError(t, err)

	// 500/час x 1.5 часа
	assert.Equal(t, 750.0, resp.TotalPrice)
}

func TestExecute_OverlapConflict(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testClient(), &fakeCache{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest(1, "10:00", 60))
	require.NoError(t, err)

	// [10:30, 11:30) пересекается с [10:00, 11:00)
	_, err = uc.Execute(context.Background(), testRequest(2, "10:30", 60))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_AdjacentIntervalSucceeds(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testClient(), &fakeCache{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest(1, "10:00", 60))
	require.NoError(t, err)

	// [11:00, 12:00) встык - полуинтервалы не пересекаются
	resp, err := uc.Execute(context.Background(), testRequest(2, "11:00", 60))
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), resp.StartTime)
}

func TestExecute_ConcurrentIdenticalRequests(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, testClient(), &fakeCache{}, &fakeTxManager{})

	const workers = 2
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), testRequest(userID, "10:00", 60))
			errs <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(errs)

	// Ровно один успех и ровно один конфликт
	var successes, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, repo.reservations, 1)
}

func TestExecute_BusyOnTxTimeout(t *testing.T) {
	txMgr := &fakeTxManager{
		err: fmt.Errorf("%w: transaction timed out", simpletxmanager.ErrTxTimeout),
	}
	uc := newTestUseCase(&fakeRepo{}, testClient(), &fakeCache{}, txMgr)

	_, err := uc.Execute(context.Background(), testRequest(1, "10:00", 60))
	assert.ErrorIs(t, err, ErrBusy)
}

func TestExecute_BusyOnSerializationFailure(t *testing.T) {
	txMgr := &fakeTxManager{
		err: fmt.Errorf("%w: retries exhausted", simpletxmanager.ErrSerialization),
	}
	uc := newTestUseCase(&fakeRepo{}, testClient(), &fakeCache{}, txMgr)

	_, err := uc.Execute(context.Background(), testRequest(1, "10:00", 60))
	assert.ErrorIs(t, err, ErrBusy)
}

func TestExecute_OutOfHours(t *testing.T) {
	client := testClient()
	client.court.OperatingHours = venueservice.OperatingHours{Start: "06:00", End: "09:00"}
	uc := newTestUseCase(&fakeRepo{}, client, &fakeCache{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest(1, "10:00", 60))
	assert.ErrorIs(t, err, ErrOutOfHours)
}

func TestExecute_InactiveCourt(t *testing.T) {
	client := testClient()
	client.court.IsActive = false
	uc := newTestUseCase(&fakeRepo{}, client, &fakeCache{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest(1, "10:00", 60))
	assert.ErrorIs(t, err, ErrCourtInactive)
}

func TestExecute_VenueNotApproved(t *testing.T) {
	client := testClient()
	client.venue.IsApproved = false
	uc := newTestUseCase(&fakeRepo{}, client, &fakeCache{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest(1, "10:00", 60))
	assert.ErrorIs(t, err, ErrVenueNotApproved)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, testClient(), &fakeCache{}, &fakeTxManager{})

	req := testRequest(1, "10:00", 60)
	req.Date = time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, testClient(), &fakeCache{}, &fakeTxManager{})

	// Не кратно гранулярности
	_, err := uc.Execute(context.Background(), testRequest(1, "10:00", 45))
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Нулевая длительность
	_, err = uc.Execute(context.Background(), testRequest(1, "10:00", 0))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
