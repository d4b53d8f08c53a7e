package memory

import (
	"context"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

type userRow struct {
	user domain.User
}

type userRepo struct {
	do access
}

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	return r.do(func(st *state) error {
		if _, ok := st.users[user.ID]; ok {
			return repository.ErrAlreadyExists
		}
		for _, row := range st.users {
			if row.user.Email == user.Email {
				return repository.ErrAlreadyExists
			}
		}
		st.users[user.ID] = userRow{user: *user}
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	var out *domain.User
	err := r.do(func(st *state) error {
		row, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		u := row.user
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	var out *domain.User
	err := r.do(func(st *state) error {
		for _, row := range st.users {
			if row.user.Email == email {
				u := row.user
				out = &u
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}
