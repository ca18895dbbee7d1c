package ports

import (
	"context"
	"errors"

	"travel-facilities-api/internal/domain"
)

// Returned by external clients when no API credential is configured.
// This is the normal "enrichment disabled" state, not a failure, and
// callers degrade to local computation without logging it as an error.
var ErrNotConfigured = errors.New("external service credential is not configured")

// Travel distance and duration for one origin->destination leg as reported
// by an external routing service, already normalized to km and seconds.
type RouteLeg struct {
	DistanceKm      float64
	DurationSeconds int
}

// Contract for retrieving a driving route between two coordinates from an
// external routing service. Implementations absorb transport and payload
// problems into an error return; they never panic and never block past
// their configured timeout.
type RouteProvider interface {
	// FetchRoute returns the normalized route leg, ErrNotConfigured when no
	// credential is set, or a descriptive error when the lookup failed.
	FetchRoute(ctx context.Context, origin, destination domain.Coordinate) (RouteLeg, error)
}
