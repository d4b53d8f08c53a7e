package postgres

import (
	"context"
	"database/sql"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

const rideRequestColumns = `id, driver_id, passenger_id, ride_id, vehicle_id, status, created_at`

// RideRequestRepository is a PostgreSQL implementation of repository.RideRequestRepository.
type RideRequestRepository struct {
	q Querier
}

// NewRideRequestRepository creates a new PostgreSQL ride request repository.
func NewRideRequestRepository(db *sql.DB) *RideRequestRepository {
	return &RideRequestRepository{q: db}
}

var _ repository.RideRequestRepository = (*RideRequestRepository)(nil)

// Create persists a new ride request.
func (r *RideRequestRepository) Create(ctx context.Context, req *domain.RideRequest) error {
	query := `
		INSERT INTO ride_requests (id, driver_id, passenger_id, ride_id, vehicle_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.ExecContext(ctx, query,
		req.ID,
		req.DriverID,
		req.PassengerID,
		req.RideID,
		req.VehicleID,
		req.Status,
		req.CreatedAt,
	)
	return translateError(err)
}

// GetByID retrieves a ride request by ID.
func (r *RideRequestRepository) GetByID(ctx context.Context, id string) (*domain.RideRequest, error) {
	query := `SELECT ` + rideRequestColumns + ` FROM ride_requests WHERE id = $1`

	req, err := scanRideRequest(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return req, nil
}

// ListByDriver retrieves all requests addressed to a driver.
func (r *RideRequestRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.RideRequest, error) {
	query := `SELECT ` + rideRequestColumns + ` FROM ride_requests WHERE driver_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, driverID)
}

// ListByPassenger retrieves all requests sent by a passenger.
func (r *RideRequestRepository) ListByPassenger(ctx context.Context, passengerID string) ([]*domain.RideRequest, error) {
	query := `SELECT ` + rideRequestColumns + ` FROM ride_requests WHERE passenger_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, passengerID)
}

// Resolve moves a pending request addressed to driverID to status.
func (r *RideRequestRepository) Resolve(ctx context.Context, id, driverID string, status domain.RideRequestStatus) (bool, error) {
	query := `UPDATE ride_requests SET status = $3 WHERE id = $1 AND driver_id = $2 AND status = 'pending'`
	result, err := r.q.ExecContext(ctx, query, id, driverID, status)
	if err != nil {
		return false, err
	}
	return affected(result)
}

func (r *RideRequestRepository) list(ctx context.Context, query string, arg string) ([]*domain.RideRequest, error) {
	rows, err := r.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*domain.RideRequest
	for rows.Next() {
		req, err := scanRideRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func scanRideRequest(s scanner) (*domain.RideRequest, error) {
	var req domain.RideRequest
	if err := s.Scan(
		&req.ID,
		&req.DriverID,
		&req.PassengerID,
		&req.RideID,
		&req.VehicleID,
		&req.Status,
		&req.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}
