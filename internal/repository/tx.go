package repository

import "context"

// Repositories groups the repositories bound to one unit of work.
type Repositories struct {
	Rides        RideRepository
	Bookings     BookingRepository
	RideRequests RideRequestRepository
	Agreements   AgreementRepository
	Users        UserRepository
	Vehicles     VehicleRepository
}

// Transactor runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise; fn's error is returned unchanged.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
