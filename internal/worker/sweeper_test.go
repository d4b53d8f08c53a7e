package worker

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"ridepool/internal/domain"
	"ridepool/internal/logging"
	"ridepool/internal/redis"
	"ridepool/internal/repository/memory"
)

var sweepNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, store *memory.Store, rides ...domain.Ride) {
	t.Helper()
	for i := range rides {
		if err := store.Repositories().Rides.Create(context.Background(), &rides[i]); err != nil {
			t.Fatalf("seed %s: %v", rides[i].ID, err)
		}
	}
}

func status(t *testing.T, store *memory.Store, id string) domain.RideStatus {
	t.Helper()
	ride, err := store.Repositories().Rides.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get %s: %v", id, err)
	}
	return ride.Status
}

func newTestSweeper(store *memory.Store, lock Locker, cache Invalidator) (*Sweeper, *bytes.Buffer) {
	var buf bytes.Buffer
	s := NewSweeper(SweeperConfig{
		Rides:  store.Repositories().Rides,
		Lock:   lock,
		Cache:  cache,
		Logger: logging.NewWithWriter(&buf, "debug"),
	})
	s.now = func() time.Time { return sweepNow }
	return s, &buf
}

type recordingCache struct {
	invalidated []string
}

func (c *recordingCache) InvalidateRides(_ context.Context, ids []string) error {
	c.invalidated = append(c.invalidated, ids...)
	return nil
}

func TestSweeper_CompletesDepartedRides(t *testing.T) {
	store := memory.NewStore()
	seed(t, store,
		domain.Ride{ID: "past-open", Date: "2026-03-10", Time: "11:59", Status: domain.RideStatusOpen},
		domain.Ride{ID: "past-full", Date: "2026-03-09", Time: "23:00", Status: domain.RideStatusFull},
		domain.Ride{ID: "past-canceled", Date: "2026-03-01", Time: "08:00", Status: domain.RideStatusCanceled},
		domain.Ride{ID: "now", Date: "2026-03-10", Time: "12:00", Status: domain.RideStatusOpen},
		domain.Ride{ID: "future", Date: "2026-03-11", Time: "08:00", Status: domain.RideStatusOpen},
	)
	cache := &recordingCache{}
	sweeper, _ := newTestSweeper(store, nil, cache)

	ids, err := sweeper.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 rides completed, got %v", ids)
	}

	want := map[string]domain.RideStatus{
		"past-open":     domain.RideStatusCompleted,
		"past-full":     domain.RideStatusCompleted,
		"past-canceled": domain.RideStatusCanceled,
		"now":           domain.RideStatusOpen,
		"future":        domain.RideStatusOpen,
	}
	for id, st := range want {
		if got := status(t, store, id); got != st {
			t.Errorf("%s: expected %s, got %s", id, st, got)
		}
	}
	if len(cache.invalidated) != 2 {
		t.Errorf("expected completed rides to be invalidated, got %v", cache.invalidated)
	}
}

func TestSweeper_SecondRunIsNoop(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, domain.Ride{ID: "past", Date: "2026-03-01", Time: "08:00", Status: domain.RideStatusOpen})
	sweeper, _ := newTestSweeper(store, nil, nil)

	if ids, err := sweeper.RunOnce(context.Background()); err != nil || len(ids) != 1 {
		t.Fatalf("first run: %v, %v", ids, err)
	}
	ids, err := sweeper.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected second run to change nothing, got %v", ids)
	}
	if got := status(t, store, "past"); got != domain.RideStatusCompleted {
		t.Errorf("expected completed, got %s", got)
	}
}

func TestSweeper_SkipsWhenLockHeld(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	locks := redis.NewLockStore(client)

	store := memory.NewStore()
	seed(t, store, domain.Ride{ID: "past", Date: "2026-03-01", Time: "08:00", Status: domain.RideStatusOpen})
	sweeper, logs := newTestSweeper(store, locks, nil)

	token, err := locks.Acquire(context.Background(), sweeperLockName, time.Minute)
	if err != nil || token == "" {
		t.Fatalf("pre-acquire: %q, %v", token, err)
	}

	ids, err := sweeper.RunOnce(context.Background())
	if err != nil || len(ids) != 0 {
		t.Fatalf("expected skipped sweep, got %v, %v", ids, err)
	}
	if got := status(t, store, "past"); got != domain.RideStatusOpen {
		t.Errorf("expected ride untouched while locked, got %s", got)
	}
	if !bytes.Contains(logs.Bytes(), []byte("sweep skipped")) {
		t.Errorf("expected skip to be logged, got %s", logs.String())
	}

	if err := locks.Release(context.Background(), sweeperLockName, token); err != nil {
		t.Fatalf("release: %v", err)
	}
	ids, err = sweeper.RunOnce(context.Background())
	if err != nil || len(ids) != 1 {
		t.Fatalf("expected sweep after release, got %v, %v", ids, err)
	}
	if mr.Exists("lock:" + sweeperLockName) {
		t.Error("expected sweeper to release its lock")
	}
}

func TestSweeper_StartStopsOnCancel(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, domain.Ride{ID: "past", Date: "2026-03-01", Time: "08:00", Status: domain.RideStatusOpen})
	sweeper, _ := newTestSweeper(store, nil, nil)
	sweeper.interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for status(t, store, "past") != domain.RideStatusCompleted {
		select {
		case <-deadline:
			t.Fatal("expected initial sweep to run")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
