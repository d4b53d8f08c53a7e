package memory

import (
	"context"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

type agreementRow struct {
	agreement domain.Agreement
	seq       int64
}

type agreementRepo struct {
	do access
}

func (r *agreementRepo) Create(_ context.Context, agreement *domain.Agreement) error {
	return r.do(func(st *state) error {
		if _, ok := st.agreements[agreement.ID]; ok {
			return repository.ErrAlreadyExists
		}
		st.agreements[agreement.ID] = agreementRow{agreement: *agreement, seq: st.next()}
		return nil
	})
}

func (r *agreementRepo) GetByID(_ context.Context, id string) (*domain.Agreement, error) {
	var out *domain.Agreement
	err := r.do(func(st *state) error {
		row, ok := st.agreements[id]
		if !ok {
			return repository.ErrNotFound
		}
		a := row.agreement
		out = &a
		return nil
	})
	return out, err
}

// ListByUser returns agreements in map order; callers must not rely on it.
func (r *agreementRepo) ListByUser(_ context.Context, userID string) ([]*domain.Agreement, error) {
	var out []*domain.Agreement
	err := r.do(func(st *state) error {
		for _, row := range st.agreements {
			if row.agreement.Involves(userID) {
				a := row.agreement
				out = append(out, &a)
			}
		}
		return nil
	})
	return out, err
}

func (r *agreementRepo) Resolve(_ context.Context, id, userID string, status domain.AgreementStatus) (bool, error) {
	var ok bool
	err := r.do(func(st *state) error {
		row, found := st.agreements[id]
		if !found || !row.agreement.Involves(userID) || row.agreement.Status != domain.AgreementStatusPending {
			return nil
		}
		row.agreement.Status = status
		st.agreements[id] = row
		ok = true
		return nil
	})
	return ok, err
}
