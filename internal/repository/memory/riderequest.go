package memory

import (
	"context"
	"sort"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

type rideRequestRow struct {
	req domain.RideRequest
	seq int64
}

type rideRequestRepo struct {
	do access
}

func (r *rideRequestRepo) Create(_ context.Context, req *domain.RideRequest) error {
	return r.do(func(st *state) error {
		if _, ok := st.rideRequests[req.ID]; ok {
			return repository.ErrAlreadyExists
		}
		st.rideRequests[req.ID] = rideRequestRow{req: *req, seq: st.next()}
		return nil
	})
}

func (r *rideRequestRepo) GetByID(_ context.Context, id string) (*domain.RideRequest, error) {
	var out *domain.RideRequest
	err := r.do(func(st *state) error {
		row, ok := st.rideRequests[id]
		if !ok {
			return repository.ErrNotFound
		}
		req := row.req
		out = &req
		return nil
	})
	return out, err
}

func (r *rideRequestRepo) ListByDriver(_ context.Context, driverID string) ([]*domain.RideRequest, error) {
	return r.list(func(req domain.RideRequest) bool { return req.DriverID == driverID })
}

func (r *rideRequestRepo) ListByPassenger(_ context.Context, passengerID string) ([]*domain.RideRequest, error) {
	return r.list(func(req domain.RideRequest) bool { return req.PassengerID == passengerID })
}

// list returns matching requests newest first.
func (r *rideRequestRepo) list(match func(domain.RideRequest) bool) ([]*domain.RideRequest, error) {
	var rows []rideRequestRow
	err := r.do(func(st *state) error {
		for _, row := range st.rideRequests {
			if match(row.req) {
				rows = append(rows, row)
			}
		}
		return nil
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*domain.RideRequest, 0, len(rows))
	for _, row := range rows {
		req := row.req
		out = append(out, &req)
	}
	return out, err
}

func (r *rideRequestRepo) Resolve(_ context.Context, id, driverID string, status domain.RideRequestStatus) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		row, found := st.rideRequests[id]
		if !found || row.req.DriverID != driverID || row.req.Status != domain.RideRequestStatusPending {
			return nil
		}
		row.req.Status = status
		st.rideRequests[id] = row
		ok = true
		return nil
	})
	return ok, err
}
