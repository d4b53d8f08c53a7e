package repository

import (
	"context"

	"ridepool/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// ListByPassenger retrieves all bookings made by a passenger.
	ListByPassenger(ctx context.Context, passengerID string) ([]*domain.Booking, error)

	// ListByRide retrieves all bookings against a ride.
	ListByRide(ctx context.Context, rideID string) ([]*domain.Booking, error)

	// HasConfirmed reports whether the passenger holds a confirmed booking on the ride.
	HasConfirmed(ctx context.Context, rideID, passengerID string) (bool, error)

	// UpdateStatus moves a booking from one status to another.
	// Reports false when the booking is not in the from status.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error)
}
