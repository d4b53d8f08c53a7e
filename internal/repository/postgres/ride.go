package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

const rideColumns = `id, driver_id, origin, destination, to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI'), seats_available, status`

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

var _ repository.RideRepository = (*RideRepository)(nil)

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, driver_id, origin, destination, date, time, seats_available, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.DriverID,
		ride.Origin,
		ride.Destination,
		ride.Date,
		ride.Time,
		ride.SeatsAvailable,
		ride.Status,
	)
	return translateError(err)
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return ride, nil
}

// List retrieves rides matching the filter.
func (r *RideRepository) List(ctx context.Context, filter domain.RideFilter) ([]*domain.Ride, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.Origin != "" {
		add("origin ILIKE '%%' || $%d || '%%'", filter.Origin)
	}
	if filter.Destination != "" {
		add("destination ILIKE '%%' || $%d || '%%'", filter.Destination)
	}
	if filter.Date != "" {
		add("date = $%d", filter.Date)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.DriverID != "" {
		add("driver_id = $%d", filter.DriverID)
	}

	query := `SELECT ` + rideColumns + ` FROM rides`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, time LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// ReserveSeats takes seats from a ride that still has enough of them.
// Concurrent writers queue on the row lock and each re-evaluates the WHERE
// clause against the committed count.
func (r *RideRepository) ReserveSeats(ctx context.Context, id string, seats int) (bool, error) {
	query := `
		UPDATE rides
		SET seats_available = seats_available - $2,
		    status = CASE WHEN seats_available - $2 = 0 THEN 'full' ELSE status END
		WHERE id = $1 AND seats_available >= $2 AND status IN ('open', 'full')
	`
	result, err := r.q.ExecContext(ctx, query, id, seats)
	if err != nil {
		return false, err
	}
	return affected(result)
}

// ReleaseSeats returns seats to a non-terminal ride.
func (r *RideRepository) ReleaseSeats(ctx context.Context, id string, seats int) (bool, error) {
	query := `
		UPDATE rides
		SET seats_available = seats_available + $2, status = 'open'
		WHERE id = $1 AND status IN ('open', 'full')
	`
	result, err := r.q.ExecContext(ctx, query, id, seats)
	if err != nil {
		return false, err
	}
	return affected(result)
}

// Cancel marks a non-terminal ride canceled.
func (r *RideRepository) Cancel(ctx context.Context, id string) (bool, error) {
	query := `UPDATE rides SET status = 'canceled' WHERE id = $1 AND status IN ('open', 'full')`
	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	return affected(result)
}

// CompleteDeparted completes every non-terminal ride whose date and time are before now.
// now is compared as wall-clock time in its own location.
func (r *RideRepository) CompleteDeparted(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		UPDATE rides
		SET status = 'completed'
		WHERE (date + time) < $1::timestamp AND status NOT IN ('completed', 'canceled')
		RETURNING id
	`
	rows, err := r.q.QueryContext(ctx, query, now.Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanRide(s scanner) (*domain.Ride, error) {
	var ride domain.Ride
	if err := s.Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.Origin,
		&ride.Destination,
		&ride.Date,
		&ride.Time,
		&ride.SeatsAvailable,
		&ride.Status,
	); err != nil {
		return nil, err
	}
	return &ride, nil
}
