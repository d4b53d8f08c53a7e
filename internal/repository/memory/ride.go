package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

type rideRow struct {
	ride domain.Ride
	seq  int64
}

type rideRepo struct {
	do access
}

func (r *rideRepo) Create(_ context.Context, ride *domain.Ride) error {
	return r.do(func(st *state) error {
		if _, ok := st.rides[ride.ID]; ok {
			return repository.ErrAlreadyExists
		}
		st.rides[ride.ID] = rideRow{ride: *ride, seq: st.next()}
		return nil
	})
}

func (r *rideRepo) GetByID(_ context.Context, id string) (*domain.Ride, error) {
	var out *domain.Ride
	err := r.do(func(st *state) error {
		row, ok := st.rides[id]
		if !ok {
			return repository.ErrNotFound
		}
		ride := row.ride
		out = &ride
		return nil
	})
	return out, err
}

func (r *rideRepo) List(_ context.Context, filter domain.RideFilter) ([]*domain.Ride, error) {
	var out []*domain.Ride
	err := r.do(func(st *state) error {
		for _, row := range st.rides {
			if matchesRide(row.ride, filter) {
				ride := row.ride
				out = append(out, &ride)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, err
}

func matchesRide(ride domain.Ride, f domain.RideFilter) bool {
	if f.Origin != "" && !containsFold(ride.Origin, f.Origin) {
		return false
	}
	if f.Destination != "" && !containsFold(ride.Destination, f.Destination) {
		return false
	}
	if f.Date != "" && ride.Date != f.Date {
		return false
	}
	if f.Status != "" && ride.Status != f.Status {
		return false
	}
	if f.DriverID != "" && ride.DriverID != f.DriverID {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (r *rideRepo) ReserveSeats(_ context.Context, id string, seats int) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		row, found := st.rides[id]
		if !found || row.ride.Status.IsTerminal() {
			return nil
		}
		if row.ride.SeatsAvailable < seats {
			return nil
		}
		row.ride.SeatsAvailable -= seats
		if row.ride.SeatsAvailable == 0 {
			row.ride.Status = domain.RideStatusFull
		}
		st.rides[id] = row
		ok = true
		return nil
	})
	return ok, err
}

func (r *rideRepo) ReleaseSeats(_ context.Context, id string, seats int) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		row, found := st.rides[id]
		if !found || row.ride.Status.IsTerminal() {
			return nil
		}
		row.ride.SeatsAvailable += seats
		row.ride.Status = domain.RideStatusOpen
		st.rides[id] = row
		ok = true
		return nil
	})
	return ok, err
}

func (r *rideRepo) Cancel(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		row, found := st.rides[id]
		if !found || row.ride.Status.IsTerminal() {
			return nil
		}
		row.ride.Status = domain.RideStatusCanceled
		st.rides[id] = row
		ok = true
		return nil
	})
	return ok, err
}

func (r *rideRepo) CompleteDeparted(_ context.Context, now time.Time) ([]string, error) {
	var ids []string
	err := r.do(func(st *state) error {
		for id, row := range st.rides {
			if row.ride.Status.IsTerminal() || !row.ride.HasDeparted(now) {
				continue
			}
			row.ride.Status = domain.RideStatusCompleted
			st.rides[id] = row
			ids = append(ids, id)
		}
		return nil
	})
	sort.Strings(ids)
	return ids, err
}
