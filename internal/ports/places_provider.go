package ports

import (
	"context"

	"travel-facilities-api/internal/domain"
)

// One raw match from the external places service. DistanceMeters is the
// route distance reported by the service and is nil when it did not
// supply one.
type RawPlace struct {
	Name           string
	Address        string
	Coord          domain.Coordinate
	DistanceMeters *float64
}

// Contract for querying an external nearby-places service by category.
// Categories use the external vocabulary (hotel, hospital, restaurant,
// clinic, museum, pharmacy). All lookups are best-effort: implementations
// return ErrNotConfigured without a credential and plain errors on
// transport or payload failures.
type PlacesProvider interface {
	// Nearby returns up to limit matches around center sorted by distance.
	// limit is clamped to the service page size.
	Nearby(ctx context.Context, center domain.Coordinate, category string, radiusMeters, offset, limit int) ([]RawPlace, error)

	// Count returns the number of matches within radiusMeters of center.
	Count(ctx context.Context, center domain.Coordinate, category string, radiusMeters int) (int, error)

	// NearestByAir returns the single closest match by air distance.
	NearestByAir(ctx context.Context, center domain.Coordinate, category string) (*RawPlace, error)

	// NearestByRoute returns the single closest match by route distance.
	NearestByRoute(ctx context.Context, center domain.Coordinate, category string) (*RawPlace, error)
}
