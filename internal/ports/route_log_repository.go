package ports

import (
	"context"

	"travel-facilities-api/internal/domain"

	"github.com/google/uuid"
)

// Port: append-only log of served route lookups. Writes are fire-and-forget
// from the caller's perspective: a failed insert must never fail the
// route request itself.
type RouteLogRepository interface {
	Add(ctx context.Context, userID *uuid.UUID, sourceID, destinationID uuid.UUID, mode domain.TravelMode) error
}
