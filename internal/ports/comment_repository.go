package ports

import (
	"context"

	"travel-facilities-api/internal/domain"

	"github.com/google/uuid"
)

// Port: ratings and comments attached to places and events.
type CommentRepository interface {
	// AddRating stores a 1..5 rating for the target.
	AddRating(ctx context.Context, target domain.TargetType, targetID uuid.UUID, rating int) error

	// ListByTarget returns the latest comments for the target, newest first.
	ListByTarget(ctx context.Context, target domain.TargetType, targetID uuid.UUID, limit int) ([]domain.Comment, error)
}

// Port: image URLs attached to places and events.
type ImageRepository interface {
	ListURLs(ctx context.Context, target domain.TargetType, targetID uuid.UUID) ([]string, error)
}
