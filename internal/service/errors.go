package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of
// them, and the HTTP layer maps kinds to status codes.
var (
	// ErrInvalidInput is returned when required fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated is returned when credentials are missing or wrong.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when the caller may not act on the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when the entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when the entity's status does not allow the transition.
	ErrInvalidState = errors.New("invalid state")

	// ErrCapacityExceeded is returned when a ride has fewer seats than requested.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrDuplicateBooking is returned when the passenger already holds a confirmed booking.
	ErrDuplicateBooking = errors.New("duplicate booking")

	// ErrConflict is returned when a unique key is taken or a write kept losing races.
	ErrConflict = errors.New("conflict")
)

func kindError(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

var (
	ErrInvalidRideID      = kindError(ErrInvalidInput, "ride id is required")
	ErrInvalidDriverID    = kindError(ErrInvalidInput, "driver id is required")
	ErrInvalidPassengerID = kindError(ErrInvalidInput, "passenger id is required")
	ErrInvalidUserID      = kindError(ErrInvalidInput, "user id is required")
	ErrInvalidBookingID   = kindError(ErrInvalidInput, "booking id is required")
	ErrInvalidRequestID   = kindError(ErrInvalidInput, "request id is required")
	ErrInvalidAgreementID = kindError(ErrInvalidInput, "agreement id is required")
	ErrInvalidVehicleID   = kindError(ErrInvalidInput, "vehicle id is required")
	ErrInvalidSeatCount   = kindError(ErrInvalidInput, "seats must be at least 1")
	ErrInvalidLocation    = kindError(ErrInvalidInput, "origin and destination are required")
	ErrInvalidSchedule    = kindError(ErrInvalidInput, "date must be YYYY-MM-DD and time HH:MM")
	ErrScheduleInPast     = kindError(ErrInvalidInput, "ride must be scheduled in the future")
	ErrSelfRequest        = kindError(ErrInvalidInput, "passenger and driver must differ")
	ErrInvalidCredentials = kindError(ErrInvalidInput, "name, email, password and role are required")
	ErrInvalidVehicle     = kindError(ErrInvalidInput, "make, model, plate and seats are required")

	ErrWrongCredentials = kindError(ErrUnauthenticated, "invalid email or password")

	ErrRideNotFound        = kindError(ErrNotFound, "ride not found")
	ErrBookingNotFound     = kindError(ErrNotFound, "booking not found")
	ErrRideRequestNotFound = kindError(ErrNotFound, "ride request not found")
	ErrAgreementNotFound   = kindError(ErrNotFound, "agreement not found")
	ErrVehicleNotFound     = kindError(ErrNotFound, "vehicle not found")

	ErrNotRideDriver     = kindError(ErrForbidden, "caller is not the driver of this ride")
	ErrNotRequestDriver  = kindError(ErrForbidden, "caller is not the driver addressed by this request")
	ErrNotAgreementParty = kindError(ErrForbidden, "caller is not a party to this agreement")
	ErrNotBookingParty   = kindError(ErrForbidden, "caller is neither the passenger nor the driver")

	ErrRideClosed          = kindError(ErrInvalidState, "ride is completed or canceled")
	ErrRideDeparted        = kindError(ErrInvalidState, "ride has already departed")
	ErrBookingNotPending   = kindError(ErrInvalidState, "booking is not pending")
	ErrBookingCancelled    = kindError(ErrInvalidState, "booking is already cancelled")
	ErrRideRequestResolved = kindError(ErrInvalidState, "ride request is already resolved")
	ErrAgreementResolved   = kindError(ErrInvalidState, "agreement is already resolved")

	ErrNotEnoughSeats = kindError(ErrCapacityExceeded, "not enough seats available")

	ErrAlreadyConfirmed = kindError(ErrDuplicateBooking, "passenger already holds a confirmed booking for this ride")

	ErrBookingContention = kindError(ErrConflict, "ride seats changed concurrently, please retry")
	ErrEmailTaken        = kindError(ErrConflict, "email already registered")
	ErrPlateTaken        = kindError(ErrConflict, "plate already registered")
)
