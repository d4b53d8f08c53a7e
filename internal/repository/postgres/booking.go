package postgres

import (
	"context"
	"database/sql"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

const bookingColumns = `id, passenger_id, ride_id, seats, status, created_at`

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

var _ repository.BookingRepository = (*BookingRepository)(nil)

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, passenger_id, ride_id, seats, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.PassengerID,
		booking.RideID,
		booking.Seats,
		booking.Status,
		booking.CreatedAt,
	)
	return translateError(err)
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return booking, nil
}

// ListByPassenger retrieves all bookings made by a passenger.
func (r *BookingRepository) ListByPassenger(ctx context.Context, passengerID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE passenger_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, passengerID)
}

// ListByRide retrieves all bookings against a ride.
func (r *BookingRepository) ListByRide(ctx context.Context, rideID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ride_id = $1 ORDER BY created_at`
	return r.list(ctx, query, rideID)
}

// HasConfirmed reports whether the passenger holds a confirmed booking on the ride.
func (r *BookingRepository) HasConfirmed(ctx context.Context, rideID, passengerID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE ride_id = $1 AND passenger_id = $2 AND status = 'confirmed')`

	var exists bool
	if err := r.q.QueryRowContext(ctx, query, rideID, passengerID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus moves a booking from one status to another.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $3 WHERE id = $1 AND status = $2`
	result, err := r.q.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, translateError(err)
	}
	return affected(result)
}

func (r *BookingRepository) list(ctx context.Context, query string, arg string) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func scanBooking(s scanner) (*domain.Booking, error) {
	var booking domain.Booking
	if err := s.Scan(
		&booking.ID,
		&booking.PassengerID,
		&booking.RideID,
		&booking.Seats,
		&booking.Status,
		&booking.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}
