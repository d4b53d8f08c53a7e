package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"ridepool/internal/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCacheStore_RideRoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewCacheStore(client)
	ctx := context.Background()

	got, err := cache.GetRide(ctx, "ride-1")
	if err != nil || got != nil {
		t.Fatalf("expected miss, got %+v, %v", got, err)
	}

	ride := &domain.Ride{
		ID: "ride-1", DriverID: "driver-1", Origin: "Pune", Destination: "Mumbai",
		Date: "2030-01-02", Time: "08:15", SeatsAvailable: 2, Status: domain.RideStatusOpen,
	}
	if err := cache.SetRide(ctx, ride); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL(rideCachePrefix + "ride-1"); ttl != RideCacheTTL {
		t.Errorf("expected ttl %v, got %v", RideCacheTTL, ttl)
	}

	got, err = cache.GetRide(ctx, "ride-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != *ride {
		t.Errorf("expected %+v, got %+v", ride, got)
	}

	if err := cache.InvalidateRide(ctx, "ride-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists(rideCachePrefix + "ride-1") {
		t.Error("expected key to be removed")
	}
}

func TestCacheStore_Expiry(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewCacheStore(client)
	ctx := context.Background()

	if err := cache.SetRide(ctx, &domain.Ride{ID: "ride-1", Status: domain.RideStatusFull}); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(RideCacheTTL + time.Second)

	got, err := cache.GetRide(ctx, "ride-1")
	if err != nil || got != nil {
		t.Errorf("expected expired entry to miss, got %+v, %v", got, err)
	}
}

func TestCacheStore_InvalidateRides(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewCacheStore(client)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := cache.SetRide(ctx, &domain.Ride{ID: id}); err != nil {
			t.Fatalf("set %s: %v", id, err)
		}
	}
	if err := cache.InvalidateRides(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	if mr.Exists(rideCachePrefix+"a") || mr.Exists(rideCachePrefix+"b") {
		t.Error("expected a and b to be removed")
	}
	if !mr.Exists(rideCachePrefix + "c") {
		t.Error("expected c to remain")
	}
}

func TestLockStore_AcquireRelease(t *testing.T) {
	mr, client := newTestClient(t)
	locks := NewLockStore(client)
	ctx := context.Background()

	token, err := locks.Acquire(ctx, "sweeper", time.Minute)
	if err != nil || token == "" {
		t.Fatalf("expected to acquire lock, got %q, %v", token, err)
	}

	second, err := locks.Acquire(ctx, "sweeper", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if second != "" {
		t.Error("expected lock to be held")
	}

	// A stale token must not free someone else's lock.
	if err := locks.Release(ctx, "sweeper", "stale"); err != nil {
		t.Fatalf("release stale: %v", err)
	}
	if !mr.Exists("lock:sweeper") {
		t.Fatal("stale release removed the lock")
	}

	if err := locks.Release(ctx, "sweeper", token); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists("lock:sweeper") {
		t.Error("expected lock to be released")
	}
}

func TestLockStore_ExpiresAfterTTL(t *testing.T) {
	mr, client := newTestClient(t)
	locks := NewLockStore(client)
	ctx := context.Background()

	if _, err := locks.Acquire(ctx, "sweeper", time.Second); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	mr.FastForward(2 * time.Second)

	token, err := locks.Acquire(ctx, "sweeper", time.Second)
	if err != nil || token == "" {
		t.Errorf("expected to re-acquire expired lock, got %q, %v", token, err)
	}
}
