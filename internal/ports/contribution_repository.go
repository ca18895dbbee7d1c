package ports

import (
	"context"

	"travel-facilities-api/internal/domain"

	"github.com/google/uuid"
)

// Port: crowd-sourced place submissions and their moderation lifecycle.
type ContributionRepository interface {
	// Create stores a pending contribution.
	Create(ctx context.Context, c *domain.Contribution) error

	// List returns pending contributions, oldest first.
	List(ctx context.Context, limit int) ([]*domain.Contribution, error)

	// Approve promotes the contribution into a Place with its translations
	// and removes the pending row, all in one transaction. Returns the
	// created place or ErrNotFound.
	Approve(ctx context.Context, id uuid.UUID) (*domain.Place, error)

	// Reject removes the pending contribution, or returns ErrNotFound.
	Reject(ctx context.Context, id uuid.UUID) error
}
