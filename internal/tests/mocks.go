package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
	"ridepool/internal/repository/memory"
)

// ──────────────────────────────────────────────
// FIXTURES
// ──────────────────────────────────────────────

// futureDate returns a date string days ahead of today.
func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(domain.DateLayout)
}

// seedRide stores a ride directly, bypassing OfferRide validation.
func seedRide(t testing.TB, store *memory.Store, ride *domain.Ride) *domain.Ride {
	t.Helper()
	if ride.Status == "" {
		ride.Status = domain.RideStatusOpen
	}
	if ride.Date == "" {
		ride.Date = futureDate(2)
	}
	if ride.Time == "" {
		ride.Time = "09:30"
	}
	if err := store.Repositories().Rides.Create(context.Background(), ride); err != nil {
		t.Fatalf("seed ride: %v", err)
	}
	return ride
}

// rideSnapshot reads the ride back for before/after comparisons.
func rideSnapshot(t testing.TB, store *memory.Store, id string) domain.Ride {
	t.Helper()
	ride, err := store.Repositories().Rides.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load ride %s: %v", id, err)
	}
	return *ride
}

// ──────────────────────────────────────────────
// MOCK RIDE CACHE
// ──────────────────────────────────────────────

// MockRideCache is an in-memory RideCache.
type MockRideCache struct {
	mu    sync.RWMutex
	rides map[string]domain.Ride

	// Counters for verification
	GetCallCount        int32
	InvalidateCallCount int32
}

// NewMockRideCache creates a new mock ride cache.
func NewMockRideCache() *MockRideCache {
	return &MockRideCache{
		rides: make(map[string]domain.Ride),
	}
}

func (m *MockRideCache) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return nil, nil
	}
	return &ride, nil
}

func (m *MockRideCache) SetRide(ctx context.Context, ride *domain.Ride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = *ride
	return nil
}

func (m *MockRideCache) InvalidateRide(ctx context.Context, rideID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rides, rideID)
	return nil
}

// Has reports whether the ride is currently cached.
func (m *MockRideCache) Has(rideID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rides[rideID]
	return ok
}

// ──────────────────────────────────────────────
// CONTENDED TRANSACTOR
// ──────────────────────────────────────────────

// ContendedTransactor wraps a store and makes the first Losses seat
// reservations miss even though the ride still has room, as if seats had been
// taken and given back between the write and the re-read.
type ContendedTransactor struct {
	Store  *memory.Store
	Losses int32

	// Counters for verification
	ReserveCallCount int32
}

func (c *ContendedTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return c.Store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		repos.Rides = &contendedRides{RideRepository: repos.Rides, owner: c}
		return fn(ctx, repos)
	})
}

type contendedRides struct {
	repository.RideRepository
	owner *ContendedTransactor
}

func (r *contendedRides) ReserveSeats(ctx context.Context, id string, seats int) (bool, error) {
	atomic.AddInt32(&r.owner.ReserveCallCount, 1)
	if atomic.AddInt32(&r.owner.Losses, -1) >= 0 {
		return false, nil
	}
	return r.RideRepository.ReserveSeats(ctx, id, seats)
}

// ──────────────────────────────────────────────
// INTERLEAVED TRANSACTOR
// ──────────────────────────────────────────────

// InterleavedTransactor runs units of work against the store's per-call
// repositories, so concurrent bookings interleave between statements the way
// they do on a database at READ COMMITTED. ReadDelay is added after every
// ride read to widen the gap between read and write. It never rolls back.
type InterleavedTransactor struct {
	Store     *memory.Store
	ReadDelay time.Duration
}

func (c *InterleavedTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	repos := c.Store.Repositories()
	repos.Rides = &slowRides{RideRepository: repos.Rides, delay: c.ReadDelay}
	return fn(ctx, repos)
}

type slowRides struct {
	repository.RideRepository
	delay time.Duration
}

func (r *slowRides) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	ride, err := r.RideRepository.GetByID(ctx, id)
	time.Sleep(r.delay)
	return ride, err
}

// ──────────────────────────────────────────────
// RACING RIDE REPOSITORY
// ──────────────────────────────────────────────

// RacingRides runs BetweenReads once, right after the first ride read
// returns, to model a write that commits while a reader is filling the cache.
type RacingRides struct {
	repository.RideRepository
	BetweenReads func()

	once sync.Once
}

func (r *RacingRides) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	ride, err := r.RideRepository.GetByID(ctx, id)
	if r.BetweenReads != nil {
		r.once.Do(r.BetweenReads)
	}
	return ride, err
}
