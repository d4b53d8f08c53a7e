package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ridepool/internal/config"
)

// openStorage is swapped in tests.
var openStorage = NewStorage

// Backends holds the connections opened at startup. Redis is nil when disabled.
type Backends struct {
	Storage Storage
	Redis   *redis.Client
}

// OpenBackends opens storage and then the optional Redis client. Storage is
// closed again when Redis cannot be reached.
func OpenBackends(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application) (*Backends, error) {
	storage, err := openStorage(ctx, cfg, nrApp)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}

	client, err := NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("connect redis at %s: %w", cfg.Redis.Addr, err), storage.Close())
	}

	return &Backends{Storage: storage, Redis: client}, nil
}

// Close releases Redis, then storage.
func (b *Backends) Close() error {
	var errs []error
	if b.Redis != nil {
		errs = append(errs, b.Redis.Close())
	}
	errs = append(errs, b.Storage.Close())
	return errors.Join(errs...)
}
