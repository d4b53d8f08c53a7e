package memory

import (
	"context"
	"sort"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

type vehicleRow struct {
	vehicle domain.Vehicle
}

type vehicleRepo struct {
	do access
}

func (r *vehicleRepo) Create(_ context.Context, v *domain.Vehicle) error {
	return r.do(func(st *state) error {
		if _, ok := st.vehicles[v.ID]; ok {
			return repository.ErrAlreadyExists
		}
		for _, row := range st.vehicles {
			if row.vehicle.Plate == v.Plate {
				return repository.ErrAlreadyExists
			}
		}
		st.vehicles[v.ID] = vehicleRow{vehicle: *v}
		return nil
	})
}

func (r *vehicleRepo) GetByID(_ context.Context, id string) (*domain.Vehicle, error) {
	var out *domain.Vehicle
	err := r.do(func(st *state) error {
		row, ok := st.vehicles[id]
		if !ok {
			return repository.ErrNotFound
		}
		v := row.vehicle
		out = &v
		return nil
	})
	return out, err
}

func (r *vehicleRepo) ListByDriver(_ context.Context, driverID string) ([]*domain.Vehicle, error) {
	var out []*domain.Vehicle
	err := r.do(func(st *state) error {
		for _, row := range st.vehicles {
			if row.vehicle.DriverID == driverID {
				v := row.vehicle
				out = append(out, &v)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, err
}
