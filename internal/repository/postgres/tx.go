package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ridepool/internal/repository"
)

// Transactor runs units of work inside a PostgreSQL transaction.
type Transactor struct {
	db *sql.DB
}

// NewTransactor creates a new Transactor.
func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db}
}

var _ repository.Transactor = (*Transactor)(nil)

// NewRepositories binds every repository to q.
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Rides:        &RideRepository{q: q},
		Bookings:     &BookingRepository{q: q},
		RideRequests: &RideRequestRepository{q: q},
		Agreements:   &AgreementRepository{q: q},
		Users:        &UserRepository{q: q},
		Vehicles:     &VehicleRepository{q: q},
	}
}

// WithinTx runs fn with transaction-scoped repositories.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) (err error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(ctx, NewRepositories(tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
