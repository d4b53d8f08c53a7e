package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a passenger's claim on seats of a ride.
// Seats never changes after creation.
type Booking struct {
	ID          string
	PassengerID string
	RideID      string
	Seats       int
	Status      BookingStatus
	CreatedAt   time.Time
}
