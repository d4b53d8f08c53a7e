package repository

import (
	"context"

	"ridepool/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create adds a new vehicle. Returns ErrAlreadyExists if the plate is taken.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// ListByDriver retrieves all vehicles of a driver.
	ListByDriver(ctx context.Context, driverID string) ([]*domain.Vehicle, error)
}
