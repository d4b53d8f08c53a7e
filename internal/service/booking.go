package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"ridepool/internal/domain"
	"ridepool/internal/observability"
	"ridepool/internal/repository"
)

const defaultBookingAttempts = 5

// errSeatsChanged signals that the reservation missed although a fresh read
// still shows enough seats, which only happens when seats came back between
// the write and the re-read.
var errSeatsChanged = errors.New("seats changed")

// BookingService owns seat accounting for bookings.
type BookingService struct {
	tx          repository.Transactor
	bookingRepo repository.BookingRepository
	rideRepo    repository.RideRepository
	cache       RideCache
	maxAttempts int
	now         func() time.Time
}

// NewBookingService creates a new BookingService. cache may be nil and
// maxAttempts below 1 falls back to the default.
func NewBookingService(
	tx repository.Transactor,
	bookingRepo repository.BookingRepository,
	rideRepo repository.RideRepository,
	cache RideCache,
	maxAttempts int,
) *BookingService {
	if maxAttempts < 1 {
		maxAttempts = defaultBookingAttempts
	}
	return &BookingService{
		tx:          tx,
		bookingRepo: bookingRepo,
		rideRepo:    rideRepo,
		cache:       cache,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// BookRequest contains the parameters for booking seats on a ride.
type BookRequest struct {
	RideID      string
	PassengerID string
	Seats       int
}

// Book reserves seats on a ride and records a pending booking.
//
// The seat decrement is a single conditional write that only applies while
// enough seats remain, so concurrent bookers never invalidate each other's
// reservation unless the ride actually ran out. The booking insert shares its
// transaction, so a failure leaves neither applied. A reservation that misses
// is classified against a fresh read of the ride.
func (s *BookingService) Book(ctx context.Context, req BookRequest) (*domain.Booking, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.PassengerID == "" {
		return nil, ErrInvalidPassengerID
	}
	if req.Seats < 1 {
		return nil, ErrInvalidSeatCount
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		booking, err := s.tryBook(ctx, req)
		if errors.Is(err, errSeatsChanged) {
			observability.SeatConflictsTotal.Inc()
			continue
		}
		observability.BookingsTotal.WithLabelValues(bookingOutcome(err)).Inc()
		if err != nil {
			return nil, err
		}
		s.invalidate(ctx, req.RideID)
		return booking, nil
	}

	observability.BookingsTotal.WithLabelValues("contention").Inc()
	return nil, ErrBookingContention
}

func (s *BookingService) tryBook(ctx context.Context, req BookRequest) (*domain.Booking, error) {
	var booking *domain.Booking

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		ride, err := repos.Rides.GetByID(ctx, req.RideID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrRideNotFound
			}
			return err
		}

		if ride.Status.IsTerminal() {
			return ErrRideClosed
		}
		if ride.HasDeparted(s.now()) {
			return ErrRideDeparted
		}
		if ride.SeatsAvailable < req.Seats {
			return ErrNotEnoughSeats
		}

		confirmed, err := repos.Bookings.HasConfirmed(ctx, ride.ID, req.PassengerID)
		if err != nil {
			return err
		}
		if confirmed {
			return ErrAlreadyConfirmed
		}

		reserved, err := repos.Rides.ReserveSeats(ctx, ride.ID, req.Seats)
		if err != nil {
			return err
		}
		if !reserved {
			return reservationMiss(ctx, repos.Rides, ride.ID, req.Seats)
		}

		booking = &domain.Booking{
			ID:          uuid.New().String(),
			PassengerID: req.PassengerID,
			RideID:      ride.ID,
			Seats:       req.Seats,
			Status:      domain.BookingStatusPending,
			CreatedAt:   s.now(),
		}
		return repos.Bookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ConfirmBooking confirms a pending booking on behalf of the ride's driver.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, driverID string) (*domain.Booking, error) {
	var booking *domain.Booking

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		b, ride, err := loadBooking(ctx, repos, bookingID)
		if err != nil {
			return err
		}

		if ride.DriverID != driverID {
			return ErrNotRideDriver
		}
		if ride.Status.IsTerminal() {
			return ErrRideClosed
		}
		if b.Status != domain.BookingStatusPending {
			return ErrBookingNotPending
		}

		confirmed, err := repos.Bookings.HasConfirmed(ctx, ride.ID, b.PassengerID)
		if err != nil {
			return err
		}
		if confirmed {
			return ErrAlreadyConfirmed
		}

		ok, err := repos.Bookings.UpdateStatus(ctx, b.ID, domain.BookingStatusPending, domain.BookingStatusConfirmed)
		if err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				return ErrAlreadyConfirmed
			}
			return err
		}
		if !ok {
			return ErrBookingNotPending
		}

		b.Status = domain.BookingStatusConfirmed
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking cancels a booking on behalf of its passenger or the ride's
// driver. Its seats go back to the ride unless the ride is already terminal.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
	var booking *domain.Booking

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		b, ride, err := loadBooking(ctx, repos, bookingID)
		if err != nil {
			return err
		}

		if callerID == "" || (b.PassengerID != callerID && ride.DriverID != callerID) {
			return ErrNotBookingParty
		}
		if b.Status == domain.BookingStatusCancelled {
			return ErrBookingCancelled
		}

		ok, err := repos.Bookings.UpdateStatus(ctx, b.ID, b.Status, domain.BookingStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBookingCancelled
		}

		if _, err := repos.Rides.ReleaseSeats(ctx, ride.ID, b.Seats); err != nil {
			return err
		}

		b.Status = domain.BookingStatusCancelled
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, booking.RideID)
	return booking, nil
}

// ListPassengerBookings lists the bookings a passenger has made.
func (s *BookingService) ListPassengerBookings(ctx context.Context, passengerID string) ([]*domain.Booking, error) {
	if passengerID == "" {
		return nil, ErrInvalidPassengerID
	}
	return s.bookingRepo.ListByPassenger(ctx, passengerID)
}

// ListRideBookings lists the bookings against a ride for its driver.
func (s *BookingService) ListRideBookings(ctx context.Context, rideID, driverID string) ([]*domain.Booking, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}
	if ride.DriverID != driverID {
		return nil, ErrNotRideDriver
	}

	return s.bookingRepo.ListByRide(ctx, rideID)
}

// reservationMiss explains why a seat reservation did not apply.
func reservationMiss(ctx context.Context, rides repository.RideRepository, rideID string, seats int) error {
	current, err := rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRideNotFound
		}
		return err
	}
	switch {
	case current.Status.IsTerminal():
		return ErrRideClosed
	case current.SeatsAvailable < seats:
		return ErrNotEnoughSeats
	default:
		return errSeatsChanged
	}
}

func loadBooking(ctx context.Context, repos repository.Repositories, bookingID string) (*domain.Booking, *domain.Ride, error) {
	if bookingID == "" {
		return nil, nil, ErrInvalidBookingID
	}

	b, err := repos.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}

	ride, err := repos.Rides.GetByID(ctx, b.RideID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrRideNotFound
		}
		return nil, nil, err
	}
	return b, ride, nil
}

func (s *BookingService) invalidate(ctx context.Context, rideID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateRide(ctx, rideID)
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return "booked"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
