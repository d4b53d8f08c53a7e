package domain

import (
	"fmt"
	"time"
)

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusOpen      RideStatus = "open"
	RideStatusFull      RideStatus = "full"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCanceled  RideStatus = "canceled"
)

// Layouts of the ride date and time columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// IsTerminal reports whether no further seat or status mutation is allowed.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCanceled
}

// Ride represents a trip offered by a driver.
type Ride struct {
	ID             string
	DriverID       string
	Origin         string
	Destination    string
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
	SeatsAvailable int
	Status         RideStatus
}

// DepartureAt combines Date and Time in the given location.
func (r *Ride) DepartureAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, r.Date+" "+r.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("ride %s: invalid schedule %q %q: %w", r.ID, r.Date, r.Time, err)
	}
	return t, nil
}

// HasDeparted reports whether the scheduled departure is strictly before now.
func (r *Ride) HasDeparted(now time.Time) bool {
	at, err := r.DepartureAt(now.Location())
	if err != nil {
		return false
	}
	return at.Before(now)
}

// RideFilter narrows a ride search. Empty fields match everything.
type RideFilter struct {
	Origin      string
	Destination string
	Date        string
	Status      RideStatus
	DriverID    string
}
