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

// RideRequestService handles passenger requests addressed to a driver.
// Resolving a request never touches seats; that only happens through Book.
type RideRequestService struct {
	requestRepo repository.RideRequestRepository
	rideRepo    repository.RideRepository
	vehicleRepo repository.VehicleRepository
	now         func() time.Time
}

// NewRideRequestService creates a new RideRequestService.
func NewRideRequestService(
	requestRepo repository.RideRequestRepository,
	rideRepo repository.RideRepository,
	vehicleRepo repository.VehicleRepository,
) *RideRequestService {
	return &RideRequestService{
		requestRepo: requestRepo,
		rideRepo:    rideRepo,
		vehicleRepo: vehicleRepo,
		now:         time.Now,
	}
}

// RequestRideRequest contains the parameters for requesting a ride from a driver.
type RequestRideRequest struct {
	DriverID    string
	PassengerID string
	RideID      string
	VehicleID   string
}

// RequestRide records a pending request. Capacity is not checked here.
func (s *RideRequestService) RequestRide(ctx context.Context, req RequestRideRequest) (*domain.RideRequest, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if req.PassengerID == "" {
		return nil, ErrInvalidPassengerID
	}
	if req.PassengerID == req.DriverID {
		return nil, ErrSelfRequest
	}

	if _, err := s.rideRepo.GetByID(ctx, req.RideID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if vehicle.DriverID != req.DriverID {
		return nil, ErrVehicleNotFound
	}

	rideReq := &domain.RideRequest{
		ID:          uuid.New().String(),
		DriverID:    req.DriverID,
		PassengerID: req.PassengerID,
		RideID:      req.RideID,
		VehicleID:   req.VehicleID,
		Status:      domain.RideRequestStatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.requestRepo.Create(ctx, rideReq); err != nil {
		return nil, err
	}
	return rideReq, nil
}

// Accept marks a pending request accepted.
func (s *RideRequestService) Accept(ctx context.Context, requestID, driverID string) (*domain.RideRequest, error) {
	return s.resolve(ctx, requestID, driverID, domain.RideRequestStatusAccepted)
}

// Reject marks a pending request rejected.
func (s *RideRequestService) Reject(ctx context.Context, requestID, driverID string) (*domain.RideRequest, error) {
	return s.resolve(ctx, requestID, driverID, domain.RideRequestStatusRejected)
}

// resolve performs the single pending -> accepted|rejected transition.
// A request that is already resolved yields ErrRideRequestResolved.
func (s *RideRequestService) resolve(ctx context.Context, requestID, driverID string, status domain.RideRequestStatus) (*domain.RideRequest, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}

	rideReq, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRideRequestNotFound
		}
		return nil, err
	}

	if rideReq.DriverID != driverID {
		return nil, ErrNotRequestDriver
	}
	if rideReq.Status != domain.RideRequestStatusPending {
		return nil, ErrRideRequestResolved
	}

	ok, err := s.requestRepo.Resolve(ctx, requestID, driverID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Resolved by a concurrent call between the read and the update.
		return nil, ErrRideRequestResolved
	}

	observability.RideRequestsTotal.WithLabelValues(string(status)).Inc()
	rideReq.Status = status
	return rideReq, nil
}

// ListRequestsForDriver lists requests addressed to the driver.
func (s *RideRequestService) ListRequestsForDriver(ctx context.Context, driverID string) ([]*domain.RideRequest, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.requestRepo.ListByDriver(ctx, driverID)
}

// ListRequestsForPassenger lists requests the passenger has sent.
func (s *RideRequestService) ListRequestsForPassenger(ctx context.Context, passengerID string) ([]*domain.RideRequest, error) {
	if passengerID == "" {
		return nil, ErrInvalidPassengerID
	}
	return s.requestRepo.ListByPassenger(ctx, passengerID)
}
