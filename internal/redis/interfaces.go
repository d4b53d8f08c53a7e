package redis

import (
	"context"
	"time"

	"ridepool/internal/domain"
)

// RideCacheInterface defines the interface for ride caching.
type RideCacheInterface interface {
	GetRide(ctx context.Context, rideID string) (*domain.Ride, error)
	SetRide(ctx context.Context, ride *domain.Ride) error
	InvalidateRide(ctx context.Context, rideID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (string, error)
	Release(ctx context.Context, name, token string) error
}

// Ensure concrete types implement interfaces.
var (
	_ RideCacheInterface = (*CacheStore)(nil)
	_ LockStoreInterface = (*LockStore)(nil)
)
