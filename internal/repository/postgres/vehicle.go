package postgres

import (
	"context"
	"database/sql"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

// VehicleRepository implements repository.VehicleRepository using PostgreSQL.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new VehicleRepository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

var _ repository.VehicleRepository = (*VehicleRepository)(nil)

// Create adds a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (id, driver_id, make, model, plate, seats) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.ExecContext(ctx, query, v.ID, v.DriverID, v.Make, v.Model, v.Plate, v.Seats)
	return translateError(err)
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT id, driver_id, make, model, plate, seats FROM vehicles WHERE id = $1`

	var v domain.Vehicle
	err := r.q.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.DriverID, &v.Make, &v.Model, &v.Plate, &v.Seats)
	if err != nil {
		return nil, translateError(err)
	}
	return &v, nil
}

// ListByDriver retrieves all vehicles of a driver.
func (r *VehicleRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Vehicle, error) {
	query := `SELECT id, driver_id, make, model, plate, seats FROM vehicles WHERE driver_id = $1 ORDER BY plate`

	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.DriverID, &v.Make, &v.Model, &v.Plate, &v.Seats); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}
