package ports

import (
	"context"
	"errors"

	"travel-facilities-api/internal/domain"

	"github.com/google/uuid"
)

// Returned by repositories when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Filter criteria for place listings. Zero values mean "no constraint".
type PlaceFilter struct {
	Type       domain.PlaceType
	City       string
	MinRating  float64
	PriceLevel int // 1=budget, 2=mid, 3=high; 0 disables the filter
	Limit      int
}

// Port: read access to stored Place records.
type PlaceRepository interface {
	// ListPlaces returns places matching filter ordered by average rating,
	// highest first, with translations and amenities attached.
	ListPlaces(ctx context.Context, filter PlaceFilter) ([]*domain.Place, error)

	// GetPlace returns one place with translations, amenities, per-type
	// details and its average rating, or ErrNotFound.
	GetPlace(ctx context.Context, id uuid.UUID) (*domain.Place, error)

	// ListByType returns up to limit places of one category with
	// translations attached.
	ListByType(ctx context.Context, t domain.PlaceType, limit int) ([]*domain.Place, error)
}
