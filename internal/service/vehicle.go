package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

// VehicleService handles driver vehicles.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// RegisterVehicleRequest contains the parameters for registering a vehicle.
type RegisterVehicleRequest struct {
	DriverID string
	Make     string
	Model    string
	Plate    string
	Seats    int
}

// RegisterVehicle adds a vehicle to the driver's fleet.
func (s *VehicleService) RegisterVehicle(ctx context.Context, req RegisterVehicleRequest) (*domain.Vehicle, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	plate := strings.ToUpper(strings.TrimSpace(req.Plate))
	if strings.TrimSpace(req.Make) == "" || strings.TrimSpace(req.Model) == "" || plate == "" || req.Seats < 1 {
		return nil, ErrInvalidVehicle
	}

	vehicle := &domain.Vehicle{
		ID:       uuid.New().String(),
		DriverID: req.DriverID,
		Make:     strings.TrimSpace(req.Make),
		Model:    strings.TrimSpace(req.Model),
		Plate:    plate,
		Seats:    req.Seats,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrPlateTaken
		}
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles lists the driver's vehicles.
func (s *VehicleService) ListVehicles(ctx context.Context, driverID string) ([]*domain.Vehicle, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.vehicleRepo.ListByDriver(ctx, driverID)
}
