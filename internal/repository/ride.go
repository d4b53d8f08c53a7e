package repository

import (
	"context"
	"time"

	"ridepool/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// List retrieves rides matching the filter, soonest departure first.
	List(ctx context.Context, filter domain.RideFilter) ([]*domain.Ride, error)

	// ReserveSeats decrements seats_available by seats in a single conditional
	// write, only if at least seats remain and the ride is not terminal. The
	// status flips to full when the result is zero. Reports false when no row
	// matched.
	ReserveSeats(ctx context.Context, id string, seats int) (bool, error)

	// ReleaseSeats gives seats back to a non-terminal ride and reopens it.
	// Reports false when no row matched.
	ReleaseSeats(ctx context.Context, id string, seats int) (bool, error)

	// Cancel marks a non-terminal ride canceled. Reports false when no row matched.
	Cancel(ctx context.Context, id string) (bool, error)

	// CompleteDeparted marks every non-terminal ride scheduled strictly before
	// now as completed and returns the IDs of the rides changed.
	CompleteDeparted(ctx context.Context, now time.Time) ([]string, error)
}
