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

// AgreementService handles passenger/driver agreements on a ride.
type AgreementService struct {
	agreementRepo repository.AgreementRepository
	rideRepo      repository.RideRepository
	now           func() time.Time
}

// NewAgreementService creates a new AgreementService.
func NewAgreementService(agreementRepo repository.AgreementRepository, rideRepo repository.RideRepository) *AgreementService {
	return &AgreementService{
		agreementRepo: agreementRepo,
		rideRepo:      rideRepo,
		now:           time.Now,
	}
}

// CreateAgreementRequest contains the parameters for opening an agreement.
type CreateAgreementRequest struct {
	RideID      string
	PassengerID string
	CallerID    string
}

// Create opens a pending agreement between the passenger and the ride's driver.
// Either of them may open it.
func (s *AgreementService) Create(ctx context.Context, req CreateAgreementRequest) (*domain.Agreement, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.PassengerID == "" {
		return nil, ErrInvalidPassengerID
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}

	if req.PassengerID == ride.DriverID {
		return nil, ErrSelfRequest
	}
	if req.CallerID != ride.DriverID && req.CallerID != req.PassengerID {
		return nil, ErrNotAgreementParty
	}

	agreement := &domain.Agreement{
		ID:          uuid.New().String(),
		PassengerID: req.PassengerID,
		DriverID:    ride.DriverID,
		RideID:      ride.ID,
		Status:      domain.AgreementStatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.agreementRepo.Create(ctx, agreement); err != nil {
		return nil, err
	}
	return agreement, nil
}

// Accept marks a pending agreement accepted. Either party may accept.
func (s *AgreementService) Accept(ctx context.Context, agreementID, callerID string) (*domain.Agreement, error) {
	return s.resolve(ctx, agreementID, callerID, domain.AgreementStatusAccepted)
}

// Reject marks a pending agreement rejected. Either party may reject.
func (s *AgreementService) Reject(ctx context.Context, agreementID, callerID string) (*domain.Agreement, error) {
	return s.resolve(ctx, agreementID, callerID, domain.AgreementStatusRejected)
}

func (s *AgreementService) resolve(ctx context.Context, agreementID, callerID string, status domain.AgreementStatus) (*domain.Agreement, error) {
	if agreementID == "" {
		return nil, ErrInvalidAgreementID
	}

	agreement, err := s.agreementRepo.GetByID(ctx, agreementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAgreementNotFound
		}
		return nil, err
	}

	if !agreement.Involves(callerID) {
		return nil, ErrNotAgreementParty
	}
	if agreement.Status != domain.AgreementStatusPending {
		return nil, ErrAgreementResolved
	}

	ok, err := s.agreementRepo.Resolve(ctx, agreementID, callerID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAgreementResolved
	}

	observability.AgreementsTotal.WithLabelValues(string(status)).Inc()
	agreement.Status = status
	return agreement, nil
}

// ListForUser lists agreements where the user is passenger or driver.
// The order is unspecified.
func (s *AgreementService) ListForUser(ctx context.Context, userID string) ([]*domain.Agreement, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.agreementRepo.ListByUser(ctx, userID)
}
