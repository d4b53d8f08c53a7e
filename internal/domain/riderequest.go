package domain

import "time"

// RideRequestStatus represents the current status of a ride request.
type RideRequestStatus string

const (
	RideRequestStatusPending  RideRequestStatus = "pending"
	RideRequestStatusAccepted RideRequestStatus = "accepted"
	RideRequestStatusRejected RideRequestStatus = "rejected"
)

// RideRequest is a passenger's direct ask to a driver for a ride and vehicle.
type RideRequest struct {
	ID          string
	DriverID    string
	PassengerID string
	RideID      string
	VehicleID   string
	Status      RideRequestStatus
	CreatedAt   time.Time
}
