package services

import (
	"context"
	"errors"
	"testing"

	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"

	"github.com/google/uuid"
)

type fakePlaceRepo struct {
	hospitals []*domain.Place
	err       error
}

func (f *fakePlaceRepo) ListPlaces(ctx context.Context, filter ports.PlaceFilter) ([]*domain.Place, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePlaceRepo) GetPlace(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePlaceRepo) ListByType(ctx context.Context, t domain.PlaceType, limit int) ([]*domain.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hospitals, nil
}

type fakePlacesProvider struct {
	byCategory map[string][]ports.RawPlace
	err        error
	queries    []string
}

func (f *fakePlacesProvider) Nearby(ctx context.Context, center domain.Coordinate, category string, radiusMeters, offset, limit int) ([]ports.RawPlace, error) {
	f.queries = append(f.queries, category)
	if f.err != nil {
		return nil, f.err
	}
	return f.byCategory[category], nil
}

func (f *fakePlacesProvider) Count(ctx context.Context, center domain.Coordinate, category string, radiusMeters int) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakePlacesProvider) NearestByAir(ctx context.Context, center domain.Coordinate, category string) (*ports.RawPlace, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePlacesProvider) NearestByRoute(ctx context.Context, center domain.Coordinate, category string) (*ports.RawPlace, error) {
	return nil, errors.New("not implemented")
}

var emergencyCenter = domain.Coordinate{Lat: 35.6892, Lon: 51.3890}

func localHospital(lat, lon float64, name string) *domain.Place {
	return &domain.Place{
		PlaceID:      uuid.New(),
		Type:         domain.PlaceHospital,
		Coord:        domain.Coordinate{Lat: lat, Lon: lon},
		Translations: []domain.Translation{{Lang: "fa", Name: name}},
	}
}

func TestNearestEmergencyDedupByCoordinate(t *testing.T) {
	hospital := localHospital(35.7072, 51.3890, "Local Hospital")

	provider := &fakePlacesProvider{byCategory: map[string][]ports.RawPlace{
		"hospital": {
			// Same rounded coordinate as the local record: must be dropped.
			{Name: "External duplicate", Coord: hospital.Coord},
			{Name: "External other", Coord: domain.Coordinate{Lat: 35.72, Lon: 51.40}},
		},
	}}

	locator := NewEmergencyLocator(&fakePlaceRepo{hospitals: []*domain.Place{hospital}}, provider)
	matches, err := locator.NearestEmergency(context.Background(), emergencyCenter, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (duplicate removed)", len(matches))
	}
	if matches[0].Source != domain.SourceLocal || matches[0].Name != "Local Hospital" {
		t.Fatalf("unexpected first match: %+v", matches[0])
	}
	if matches[1].Source != domain.SourceExternal {
		t.Fatalf("unexpected second match: %+v", matches[1])
	}
}

func TestNearestEmergencyExternalFailureFallsBackToLocal(t *testing.T) {
	hospitals := []*domain.Place{
		localHospital(35.75, 51.42, "Far Hospital"),
		localHospital(35.70, 51.39, "Near Hospital"),
	}

	provider := &fakePlacesProvider{err: errors.New("connection refused")}
	locator := NewEmergencyLocator(&fakePlaceRepo{hospitals: hospitals}, provider)

	matches, err := locator.NearestEmergency(context.Background(), emergencyCenter, 10)
	if err != nil {
		t.Fatalf("external failure must not fail the query: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Name != "Near Hospital" {
		t.Fatalf("results not sorted by distance: %+v", matches)
	}
	for _, m := range matches {
		if m.Source != domain.SourceLocal {
			t.Fatalf("unexpected non-local match: %+v", m)
		}
		if m.ETAMinutes < 1 {
			t.Fatalf("eta below 1 minute: %+v", m)
		}
	}
}

func TestNearestEmergencyClinicFallback(t *testing.T) {
	provider := &fakePlacesProvider{byCategory: map[string][]ports.RawPlace{
		"clinic": {{Name: "Clinic", Coord: domain.Coordinate{Lat: 35.70, Lon: 51.40}}},
	}}

	locator := NewEmergencyLocator(&fakePlaceRepo{}, provider)
	matches, err := locator.NearestEmergency(context.Background(), emergencyCenter, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.queries) != 2 || provider.queries[0] != "hospital" || provider.queries[1] != "clinic" {
		t.Fatalf("expected hospital then clinic lookup, got %v", provider.queries)
	}
	if len(matches) != 1 || matches[0].Name != "Clinic" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
}

func TestNearestEmergencyExternalDistanceAmount(t *testing.T) {
	amount := 2500.0
	provider := &fakePlacesProvider{byCategory: map[string][]ports.RawPlace{
		"hospital": {
			{Name: "With amount", Coord: domain.Coordinate{Lat: 35.70, Lon: 51.40}, DistanceMeters: &amount},
		},
	}}

	locator := NewEmergencyLocator(&fakePlaceRepo{}, provider)
	matches, err := locator.NearestEmergency(context.Background(), emergencyCenter, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].DistanceKm != 2.5 {
		t.Fatalf("distance = %v, want 2.5 from the service amount", matches[0].DistanceKm)
	}
	if matches[0].ETAMinutes != 5 {
		t.Fatalf("eta = %d, want 5", matches[0].ETAMinutes)
	}
}

func TestNearestEmergencyLimitClamp(t *testing.T) {
	hospitals := make([]*domain.Place, 0, 30)
	for i := 0; i < 30; i++ {
		hospitals = append(hospitals, localHospital(35.70+float64(i)*0.01, 51.39, "H"))
	}

	locator := NewEmergencyLocator(&fakePlaceRepo{hospitals: hospitals}, &fakePlacesProvider{err: ports.ErrNotConfigured})

	matches, err := locator.NearestEmergency(context.Background(), emergencyCenter, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 20 {
		t.Fatalf("got %d matches, want clamp to 20", len(matches))
	}

	matches, err = locator.NearestEmergency(context.Background(), emergencyCenter, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want clamp to 1", len(matches))
	}
}
