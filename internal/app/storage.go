package app

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"

	"ridepool/internal/config"
	"ridepool/internal/repository"
	"ridepool/internal/repository/memory"
	"ridepool/internal/repository/postgres"
)

// Storage is the persistence backend the services run against.
type Storage struct {
	Tx    repository.Transactor
	Repos repository.Repositories
	Close func() error
}

// NewStorage opens the backend selected by cfg.Storage.Driver.
func NewStorage(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application) (Storage, error) {
	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		return Storage{
			Tx:    store,
			Repos: store.Repositories(),
			Close: func() error { return nil },
		}, nil

	case "postgres", "":
		db, err := NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			return Storage{}, err
		}
		return Storage{
			Tx:    postgres.NewTransactor(db),
			Repos: postgres.NewRepositories(db),
			Close: db.Close,
		}, nil

	default:
		return Storage{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
