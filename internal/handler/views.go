package handler

import (
	"time"

	"ridepool/internal/domain"
)

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID             string `json:"id"`
	DriverID       string `json:"driver_id"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	SeatsAvailable int    `json:"seats_available"`
	Status         string `json:"status"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID          string `json:"id"`
	PassengerID string `json:"passenger_id"`
	RideID      string `json:"ride_id"`
	Seats       int    `json:"seats"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// RideRequestResponse is the HTTP representation of a ride request.
type RideRequestResponse struct {
	ID          string `json:"id"`
	DriverID    string `json:"driver_id"`
	PassengerID string `json:"passenger_id"`
	RideID      string `json:"ride_id"`
	VehicleID   string `json:"vehicle_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// AgreementResponse is the HTTP representation of an agreement.
type AgreementResponse struct {
	ID          string `json:"id"`
	PassengerID string `json:"passenger_id"`
	DriverID    string `json:"driver_id"`
	RideID      string `json:"ride_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID       string `json:"id"`
	DriverID string `json:"driver_id"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Plate    string `json:"plate"`
	Seats    int    `json:"seats"`
}

// UserResponse is the HTTP representation of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:             r.ID,
		DriverID:       r.DriverID,
		Origin:         r.Origin,
		Destination:    r.Destination,
		Date:           r.Date,
		Time:           r.Time,
		SeatsAvailable: r.SeatsAvailable,
		Status:         string(r.Status),
	}
}

func toRideResponses(rides []*domain.Ride) []RideResponse {
	out := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		out = append(out, toRideResponse(r))
	}
	return out
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		PassengerID: b.PassengerID,
		RideID:      b.RideID,
		Seats:       b.Seats,
		Status:      string(b.Status),
		CreatedAt:   formatTime(b.CreatedAt),
	}
}

func toBookingResponses(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func toRideRequestResponse(r *domain.RideRequest) RideRequestResponse {
	return RideRequestResponse{
		ID:          r.ID,
		DriverID:    r.DriverID,
		PassengerID: r.PassengerID,
		RideID:      r.RideID,
		VehicleID:   r.VehicleID,
		Status:      string(r.Status),
		CreatedAt:   formatTime(r.CreatedAt),
	}
}

func toRideRequestResponses(reqs []*domain.RideRequest) []RideRequestResponse {
	out := make([]RideRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toRideRequestResponse(r))
	}
	return out
}

func toAgreementResponse(a *domain.Agreement) AgreementResponse {
	return AgreementResponse{
		ID:          a.ID,
		PassengerID: a.PassengerID,
		DriverID:    a.DriverID,
		RideID:      a.RideID,
		Status:      string(a.Status),
		CreatedAt:   formatTime(a.CreatedAt),
	}
}

func toAgreementResponses(agreements []*domain.Agreement) []AgreementResponse {
	out := make([]AgreementResponse, 0, len(agreements))
	for _, a := range agreements {
		out = append(out, toAgreementResponse(a))
	}
	return out
}

func toVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:       v.ID,
		DriverID: v.DriverID,
		Make:     v.Make,
		Model:    v.Model,
		Plate:    v.Plate,
		Seats:    v.Seats,
	}
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
