package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

// RideCache is a read-through cache in front of the ride table.
// GetRide returns nil, nil on a miss.
type RideCache interface {
	GetRide(ctx context.Context, rideID string) (*domain.Ride, error)
	SetRide(ctx context.Context, ride *domain.Ride) error
	InvalidateRide(ctx context.Context, rideID string) error
}

// RideService handles ride offers and the ride side of the seat ledger.
//
// Writers invalidate the cached ride after committing. A reader that fills
// the cache re-reads the row afterwards and drops the entry when it no longer
// matches, so a fill racing a write cannot pin a stale ride for the cache TTL.
type RideService struct {
	rideRepo repository.RideRepository
	cache    RideCache
	now      func() time.Time
}

// NewRideService creates a new RideService. cache may be nil.
func NewRideService(rideRepo repository.RideRepository, cache RideCache) *RideService {
	return &RideService{
		rideRepo: rideRepo,
		cache:    cache,
		now:      time.Now,
	}
}

// OfferRideRequest contains the parameters for offering a ride.
type OfferRideRequest struct {
	DriverID    string
	Origin      string
	Destination string
	Date        string
	Time        string
	Seats       int
}

// OfferRide creates an open ride owned by the driver.
func (s *RideService) OfferRide(ctx context.Context, req OfferRideRequest) (*domain.Ride, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" {
		return nil, ErrInvalidLocation
	}

	if req.Seats < 1 {
		return nil, ErrInvalidSeatCount
	}

	ride := &domain.Ride{
		ID:             uuid.New().String(),
		DriverID:       req.DriverID,
		Origin:         origin,
		Destination:    destination,
		Date:           req.Date,
		Time:           req.Time,
		SeatsAvailable: req.Seats,
		Status:         domain.RideStatusOpen,
	}

	now := s.now()
	departure, err := ride.DepartureAt(now.Location())
	if err != nil {
		return nil, ErrInvalidSchedule
	}
	if !departure.After(now) {
		return nil, ErrScheduleInPast
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

// GetRide retrieves a ride, serving from cache when possible.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	if s.cache != nil {
		if cached, err := s.cache.GetRide(ctx, rideID); err == nil && cached != nil {
			return cached, nil
		}
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.fillCache(ctx, ride)
	}
	return ride, nil
}

// fillCache stores ride and drops it again if the row moved meanwhile.
func (s *RideService) fillCache(ctx context.Context, ride *domain.Ride) {
	if err := s.cache.SetRide(ctx, ride); err != nil {
		return
	}
	fresh, err := s.rideRepo.GetByID(ctx, ride.ID)
	if err != nil || *fresh != *ride {
		_ = s.cache.InvalidateRide(ctx, ride.ID)
	}
}

// SearchRides lists rides matching the filter.
func (s *RideService) SearchRides(ctx context.Context, filter domain.RideFilter) ([]*domain.Ride, error) {
	if filter.Date != "" {
		if _, err := time.Parse(domain.DateLayout, filter.Date); err != nil {
			return nil, ErrInvalidSchedule
		}
	}
	return s.rideRepo.List(ctx, filter)
}

// ListDriverRides lists every ride offered by the driver.
func (s *RideService) ListDriverRides(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.rideRepo.List(ctx, domain.RideFilter{DriverID: driverID})
}

// CancelRide cancels a ride on behalf of its driver. Seats consumed by
// bookings are not restored and the bookings themselves are left as they are.
func (s *RideService) CancelRide(ctx context.Context, rideID, callerID string) (*domain.Ride, error) {
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

	if ride.DriverID != callerID {
		return nil, ErrNotRideDriver
	}

	ok, err := s.rideRepo.Cancel(ctx, rideID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, rideID)
	if !ok {
		return nil, ErrRideClosed
	}

	ride.Status = domain.RideStatusCanceled
	return ride, nil
}

func (s *RideService) invalidate(ctx context.Context, rideID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateRide(ctx, rideID)
}
