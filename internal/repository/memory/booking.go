package memory

import (
	"context"
	"sort"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

type bookingRow struct {
	booking domain.Booking
	seq     int64
}

type bookingRepo struct {
	do access
}

func (r *bookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	return r.do(func(st *state) error {
		if _, ok := st.bookings[booking.ID]; ok {
			return repository.ErrAlreadyExists
		}
		st.bookings[booking.ID] = bookingRow{booking: *booking, seq: st.next()}
		return nil
	})
}

func (r *bookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.do(func(st *state) error {
		row, ok := st.bookings[id]
		if !ok {
			return repository.ErrNotFound
		}
		b := row.booking
		out = &b
		return nil
	})
	return out, err
}

func (r *bookingRepo) ListByPassenger(_ context.Context, passengerID string) ([]*domain.Booking, error) {
	return r.list(func(b domain.Booking) bool { return b.PassengerID == passengerID }, true)
}

func (r *bookingRepo) ListByRide(_ context.Context, rideID string) ([]*domain.Booking, error) {
	return r.list(func(b domain.Booking) bool { return b.RideID == rideID }, false)
}

func (r *bookingRepo) list(match func(domain.Booking) bool, newestFirst bool) ([]*domain.Booking, error) {
	var rows []bookingRow
	err := r.do(func(st *state) error {
		for _, row := range st.bookings {
			if match(row.booking) {
				rows = append(rows, row)
			}
		}
		return nil
	})
	sort.Slice(rows, func(i, j int) bool {
		if newestFirst {
			return rows[i].seq > rows[j].seq
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]*domain.Booking, 0, len(rows))
	for _, row := range rows {
		b := row.booking
		out = append(out, &b)
	}
	return out, err
}

func (r *bookingRepo) HasConfirmed(_ context.Context, rideID, passengerID string) (bool, error) {
	var found bool
	err := r.do(func(st *state) error {
		found = hasConfirmed(st, rideID, passengerID, "")
		return nil
	})
	return found, err
}

func hasConfirmed(st *state, rideID, passengerID, exceptID string) bool {
	for id, row := range st.bookings {
		b := row.booking
		if id != exceptID && b.RideID == rideID && b.PassengerID == passengerID && b.Status == domain.BookingStatusConfirmed {
			return true
		}
	}
	return false
}

func (r *bookingRepo) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		row, found := st.bookings[id]
		if !found || row.booking.Status != from {
			return nil
		}
		// Mirrors the partial unique index on confirmed bookings.
		if to == domain.BookingStatusConfirmed && hasConfirmed(st, row.booking.RideID, row.booking.PassengerID, id) {
			return repository.ErrAlreadyExists
		}
		row.booking.Status = to
		st.bookings[id] = row
		ok = true
		return nil
	})
	return ok, err
}
