package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"ridepool/internal/domain"
)

// CacheStore handles ride caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// RideCacheTTL bounds how stale a cached seat count can get if an
// invalidation is lost.
const RideCacheTTL = 30 * time.Second

const rideCachePrefix = "cache:ride:"

// cachedRide is the JSON form of a ride in cache.
type cachedRide struct {
	ID             string `json:"id"`
	DriverID       string `json:"driver_id"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	SeatsAvailable int    `json:"seats_available"`
	Status         string `json:"status"`
}

// GetRide retrieves a ride from cache. Returns nil, nil on a miss.
func (s *CacheStore) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	data, err := s.client.Get(ctx, rideCachePrefix+rideID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var c cachedRide
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &domain.Ride{
		ID:             c.ID,
		DriverID:       c.DriverID,
		Origin:         c.Origin,
		Destination:    c.Destination,
		Date:           c.Date,
		Time:           c.Time,
		SeatsAvailable: c.SeatsAvailable,
		Status:         domain.RideStatus(c.Status),
	}, nil
}

// SetRide stores a ride in cache.
func (s *CacheStore) SetRide(ctx context.Context, ride *domain.Ride) error {
	data, err := json.Marshal(cachedRide{
		ID:             ride.ID,
		DriverID:       ride.DriverID,
		Origin:         ride.Origin,
		Destination:    ride.Destination,
		Date:           ride.Date,
		Time:           ride.Time,
		SeatsAvailable: ride.SeatsAvailable,
		Status:         string(ride.Status),
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, rideCachePrefix+ride.ID, data, RideCacheTTL).Err()
}

// InvalidateRide removes a ride from cache.
func (s *CacheStore) InvalidateRide(ctx context.Context, rideID string) error {
	return s.client.Del(ctx, rideCachePrefix+rideID).Err()
}

// InvalidateRides removes several rides from cache in one pipeline.
func (s *CacheStore) InvalidateRides(ctx context.Context, rideIDs []string) error {
	if len(rideIDs) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, id := range rideIDs {
		pipe.Del(ctx, rideCachePrefix+id)
	}
	_, err := pipe.Exec(ctx)
	return err
}
