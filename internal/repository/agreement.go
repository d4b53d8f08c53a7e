package repository

import (
	"context"

	"ridepool/internal/domain"
)

// AgreementRepository defines the persistence operations for agreements.
type AgreementRepository interface {
	// Create persists a new agreement.
	Create(ctx context.Context, agreement *domain.Agreement) error

	// GetByID retrieves an agreement by ID.
	GetByID(ctx context.Context, id string) (*domain.Agreement, error)

	// ListByUser retrieves agreements where the user is passenger or driver.
	ListByUser(ctx context.Context, userID string) ([]*domain.Agreement, error)

	// Resolve moves a pending agreement involving userID to status.
	// Reports false when no pending agreement for that user matched.
	Resolve(ctx context.Context, id, userID string, status domain.AgreementStatus) (bool, error)
}
