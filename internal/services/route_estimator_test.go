package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"
)

type fakeRouteProvider struct {
	leg   ports.RouteLeg
	err   error
	calls int
}

func (f *fakeRouteProvider) FetchRoute(ctx context.Context, origin, destination domain.Coordinate) (ports.RouteLeg, error) {
	f.calls++
	return f.leg, f.err
}

var (
	srcEndpoint = Endpoint{Name: "Azadi Tower", Coord: domain.Coordinate{Lat: 35.6997, Lon: 51.3380}}
	dstEndpoint = Endpoint{Name: "Golestan Palace", Coord: domain.Coordinate{Lat: 35.6802, Lon: 51.4204}, Amenities: []string{"parking"}}
)

func TestEstimateCarExternal(t *testing.T) {
	provider := &fakeRouteProvider{leg: ports.RouteLeg{DistanceKm: 12.3, DurationSeconds: 900}}
	est := NewRouteEstimator(provider)

	res := est.Estimate(context.Background(), srcEndpoint, dstEndpoint, domain.ModeCar)

	if res.ETASource != domain.SourceExternal {
		t.Fatalf("provenance = %q, want external", res.ETASource)
	}
	if res.DistanceKm != 12.3 {
		t.Fatalf("distance = %v, want 12.3", res.DistanceKm)
	}
	if res.ETAMinutes != 15 {
		t.Fatalf("eta = %d, want 15", res.ETAMinutes)
	}
	if len(res.DestinationAmenities) != 1 || res.DestinationAmenities[0] != "parking" {
		t.Fatalf("destination amenities not attached: %+v", res.DestinationAmenities)
	}
}

func TestEstimateCarFallback(t *testing.T) {
	for _, provErr := range []error{ports.ErrNotConfigured, errors.New("timeout")} {
		provider := &fakeRouteProvider{err: provErr}
		est := NewRouteEstimator(provider)

		res := est.Estimate(context.Background(), srcEndpoint, dstEndpoint, domain.ModeCar)

		if res.ETASource != domain.SourceEstimated {
			t.Fatalf("provenance = %q, want estimated", res.ETASource)
		}

		dist := domain.RoundKm(domain.DistanceKm(srcEndpoint.Coord, dstEndpoint.Coord))
		want := int(math.Round(dist / 0.5))
		if want < 1 {
			want = 1
		}
		if res.DistanceKm != dist {
			t.Fatalf("distance = %v, want haversine %v", res.DistanceKm, dist)
		}
		if res.ETAMinutes != want {
			t.Fatalf("eta = %d, want %d", res.ETAMinutes, want)
		}
	}
}

func TestEstimateWalkNeverCallsProvider(t *testing.T) {
	provider := &fakeRouteProvider{leg: ports.RouteLeg{DistanceKm: 1, DurationSeconds: 60}}
	est := NewRouteEstimator(provider)

	res := est.Estimate(context.Background(), srcEndpoint, dstEndpoint, domain.ModeWalk)

	if provider.calls != 0 {
		t.Fatalf("provider called %d times for walk mode", provider.calls)
	}
	if res.ETASource != domain.SourceEstimated {
		t.Fatalf("provenance = %q, want estimated", res.ETASource)
	}

	want := int(math.Round(res.DistanceKm / 0.08))
	if want < 1 {
		want = 1
	}
	if res.ETAMinutes != want {
		t.Fatalf("eta = %d, want %d", res.ETAMinutes, want)
	}
}

func TestEstimateTransitSpeed(t *testing.T) {
	est := NewRouteEstimator(&fakeRouteProvider{err: errors.New("unused")})

	res := est.Estimate(context.Background(), srcEndpoint, dstEndpoint, domain.ModeTransit)

	want := int(math.Round(res.DistanceKm / 0.4))
	if want < 1 {
		want = 1
	}
	if res.ETAMinutes != want {
		t.Fatalf("eta = %d, want %d", res.ETAMinutes, want)
	}
}

func TestEstimateMinimumOneMinute(t *testing.T) {
	est := NewRouteEstimator(&fakeRouteProvider{err: ports.ErrNotConfigured})

	near := Endpoint{Name: "next door", Coord: domain.Coordinate{
		Lat: srcEndpoint.Coord.Lat + 1e-6, Lon: srcEndpoint.Coord.Lon,
	}}
	res := est.Estimate(context.Background(), srcEndpoint, near, domain.ModeCar)

	if res.ETAMinutes != 1 {
		t.Fatalf("eta = %d, want minimum 1", res.ETAMinutes)
	}
	if res.DistanceKm < 0 {
		t.Fatalf("negative distance %v", res.DistanceKm)
	}
}

func TestEstimateIdempotent(t *testing.T) {
	provider := &fakeRouteProvider{leg: ports.RouteLeg{DistanceKm: 8.5, DurationSeconds: 780}}
	est := NewRouteEstimator(provider)

	a := est.Estimate(context.Background(), srcEndpoint, dstEndpoint, domain.ModeCar)
	b := est.Estimate(context.Background(), srcEndpoint, dstEndpoint, domain.ModeCar)

	if a.DistanceKm != b.DistanceKm || a.ETAMinutes != b.ETAMinutes || a.ETASource != b.ETASource {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}
