package repository

import (
	"context"

	"ridepool/internal/domain"
)

// RideRequestRepository defines the persistence operations for ride requests.
type RideRequestRepository interface {
	// Create persists a new ride request.
	Create(ctx context.Context, req *domain.RideRequest) error

	// GetByID retrieves a ride request by ID.
	GetByID(ctx context.Context, id string) (*domain.RideRequest, error)

	// ListByDriver retrieves all requests addressed to a driver.
	ListByDriver(ctx context.Context, driverID string) ([]*domain.RideRequest, error)

	// ListByPassenger retrieves all requests sent by a passenger.
	ListByPassenger(ctx context.Context, passengerID string) ([]*domain.RideRequest, error)

	// Resolve moves a pending request addressed to driverID to status.
	// Reports false when no pending request for that driver matched.
	Resolve(ctx context.Context, id, driverID string, status domain.RideRequestStatus) (bool, error)
}
