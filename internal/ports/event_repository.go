package ports

import (
	"context"

	"travel-facilities-api/internal/domain"

	"github.com/google/uuid"
)

// Port: read access to stored Event records.
type EventRepository interface {
	// ListEvents returns up to limit events ordered by start time,
	// newest first, with translations attached.
	ListEvents(ctx context.Context, limit int) ([]*domain.Event, error)

	// GetEvent returns one event with translations, or ErrNotFound.
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}
