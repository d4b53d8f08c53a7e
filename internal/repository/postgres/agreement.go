package postgres

import (
	"context"
	"database/sql"

	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

const agreementColumns = `id, passenger_id, driver_id, ride_id, status, created_at`

// AgreementRepository is a PostgreSQL implementation of repository.AgreementRepository.
type AgreementRepository struct {
	q Querier
}

// NewAgreementRepository creates a new PostgreSQL agreement repository.
func NewAgreementRepository(db *sql.DB) *AgreementRepository {
	return &AgreementRepository{q: db}
}

var _ repository.AgreementRepository = (*AgreementRepository)(nil)

// Create persists a new agreement.
func (r *AgreementRepository) Create(ctx context.Context, agreement *domain.Agreement) error {
	query := `
		INSERT INTO agreements (id, passenger_id, driver_id, ride_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.q.ExecContext(ctx, query,
		agreement.ID,
		agreement.PassengerID,
		agreement.DriverID,
		agreement.RideID,
		agreement.Status,
		agreement.CreatedAt,
	)
	return translateError(err)
}

// GetByID retrieves an agreement by ID.
func (r *AgreementRepository) GetByID(ctx context.Context, id string) (*domain.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE id = $1`

	agreement, err := scanAgreement(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return agreement, nil
}

// ListByUser retrieves agreements where the user is passenger or driver.
func (r *AgreementRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE passenger_id = $1 OR driver_id = $1`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agreements []*domain.Agreement
	for rows.Next() {
		agreement, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		agreements = append(agreements, agreement)
	}
	return agreements, rows.Err()
}

// Resolve moves a pending agreement involving userID to status.
func (r *AgreementRepository) Resolve(ctx context.Context, id, userID string, status domain.AgreementStatus) (bool, error) {
	query := `
		UPDATE agreements SET status = $3
		WHERE id = $1 AND (passenger_id = $2 OR driver_id = $2) AND status = 'pending'
	`
	result, err := r.q.ExecContext(ctx, query, id, userID, status)
	if err != nil {
		return false, err
	}
	return affected(result)
}

func scanAgreement(s scanner) (*domain.Agreement, error) {
	var agreement domain.Agreement
	if err := s.Scan(
		&agreement.ID,
		&agreement.PassengerID,
		&agreement.DriverID,
		&agreement.RideID,
		&agreement.Status,
		&agreement.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &agreement, nil
}
