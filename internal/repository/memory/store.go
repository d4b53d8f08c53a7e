// Package memory implements the repositories in process. Every unit of work
// holds the store lock for its whole duration, which gives serializable
// isolation, and a failed unit of work restores the state it started from.
package memory

import (
	"context"
	"sync"

	"ridepool/internal/repository"
)

type state struct {
	rides        map[string]rideRow
	bookings     map[string]bookingRow
	rideRequests map[string]rideRequestRow
	agreements   map[string]agreementRow
	users        map[string]userRow
	vehicles     map[string]vehicleRow
	seq          int64
}

func newState() *state {
	return &state{
		rides:        make(map[string]rideRow),
		bookings:     make(map[string]bookingRow),
		rideRequests: make(map[string]rideRequestRow),
		agreements:   make(map[string]agreementRow),
		users:        make(map[string]userRow),
		vehicles:     make(map[string]vehicleRow),
	}
}

func (s *state) clone() *state {
	c := &state{
		rides:        make(map[string]rideRow, len(s.rides)),
		bookings:     make(map[string]bookingRow, len(s.bookings)),
		rideRequests: make(map[string]rideRequestRow, len(s.rideRequests)),
		agreements:   make(map[string]agreementRow, len(s.agreements)),
		users:        make(map[string]userRow, len(s.users)),
		vehicles:     make(map[string]vehicleRow, len(s.vehicles)),
		seq:          s.seq,
	}
	for k, v := range s.rides {
		c.rides[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.rideRequests {
		c.rideRequests[k] = v
	}
	for k, v := range s.agreements {
		c.agreements[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.vehicles {
		c.vehicles[k] = v
	}
	return c
}

// next returns a monotonically increasing insertion sequence.
func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// Store is an in-memory implementation of every repository.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{st: newState()}
}

var _ repository.Transactor = (*Store)(nil)

// Repositories returns repositories that lock the store per call.
func (s *Store) Repositories() repository.Repositories {
	return bind(func(fn func(st *state) error) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn(s.st)
	})
}

// WithinTx runs fn while holding the store lock and rolls the state back if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.st.clone()
	current := s.st
	repos := bind(func(fn func(st *state) error) error {
		return fn(current)
	})

	if err := fn(ctx, repos); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// access runs fn against the store state.
type access func(fn func(st *state) error) error

func bind(do access) repository.Repositories {
	return repository.Repositories{
		Rides:        &rideRepo{do: do},
		Bookings:     &bookingRepo{do: do},
		RideRequests: &rideRequestRepo{do: do},
		Agreements:   &agreementRepo{do: do},
		Users:        &userRepo{do: do},
		Vehicles:     &vehicleRepo{do: do},
	}
}
