package services

import (
	"context"
	"errors"
	"log"
	"math"

	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"
)

// Speeds holds the travel-speed heuristics in km per minute used for
// locally estimated ETAs. The values are fixed heuristics carried over
// from the emergency/route behavior, kept configurable rather than
// replaced with "real" speeds.
type Speeds struct {
	Car     float64
	Walk    float64
	Transit float64
}

// DefaultSpeeds is car 30 km/h, walk 4.8 km/h, transit 24 km/h.
var DefaultSpeeds = Speeds{Car: 0.5, Walk: 0.08, Transit: 0.4}

// Endpoint is one resolved end of a route request: either a stored place
// (ID, name, amenities populated) or a raw coordinate with a free-form name.
type Endpoint struct {
	ID        string
	Name      string
	Coord     domain.Coordinate
	Amenities []string
}

// EndpointFromPlace builds a route endpoint from a stored place using its
// localized display name.
func EndpointFromPlace(p *domain.Place, lang string) Endpoint {
	return Endpoint{
		ID:        p.PlaceID.String(),
		Name:      p.Name(lang),
		Coord:     p.Coord,
		Amenities: p.Amenities,
	}
}

// RouteEstimator produces distance/ETA results for a pair of endpoints.
//
// Car requests consult the external routing provider first and fall back
// to a haversine estimate; walk and transit are always estimated locally.
// Apart from that one conditional network call the computation is pure, so
// identical inputs against a deterministic provider yield identical results.
type RouteEstimator struct {
	Provider ports.RouteProvider
	Speeds   Speeds
}

func NewRouteEstimator(provider ports.RouteProvider) *RouteEstimator {
	return &RouteEstimator{Provider: provider, Speeds: DefaultSpeeds}
}

// Estimate computes a RouteResult for source -> destination with the given
// travel mode. It always produces a result; external-provider failures
// degrade to the estimated path and are never surfaced to the caller.
func (e *RouteEstimator) Estimate(ctx context.Context, source, destination Endpoint, mode domain.TravelMode) domain.RouteResult {
	distKm := domain.RoundKm(domain.DistanceKm(source.Coord, destination.Coord))

	etaSource := domain.SourceEstimated
	var etaMinutes int

	switch mode {
	case domain.ModeWalk:
		etaMinutes = minutesAt(distKm, e.Speeds.Walk)
	case domain.ModeTransit:
		etaMinutes = minutesAt(distKm, e.Speeds.Transit)
	default:
		leg, err := e.Provider.FetchRoute(ctx, source.Coord, destination.Coord)
		if err == nil {
			distKm = leg.DistanceKm
			etaMinutes = etaFromSeconds(leg.DurationSeconds)
			etaSource = domain.SourceExternal
			break
		}
		if !errors.Is(err, ports.ErrNotConfigured) {
			log.Printf("external route lookup failed, using estimate: %v", err)
		}
		etaMinutes = minutesAt(distKm, e.Speeds.Car)
	}

	return domain.RouteResult{
		SourceID:             source.ID,
		DestinationID:        destination.ID,
		SourceName:           source.Name,
		DestinationName:      destination.Name,
		TravelMode:           mode,
		DistanceKm:           distKm,
		ETAMinutes:           etaMinutes,
		ETASource:            etaSource,
		SourceAmenities:      source.Amenities,
		DestinationAmenities: destination.Amenities,
		SourceCoord:          source.Coord,
		DestinationCoord:     destination.Coord,
	}
}

// minutesAt converts a distance to whole ETA minutes at a km-per-minute
// speed. ETAs are never below one minute.
func minutesAt(distKm, kmPerMinute float64) int {
	return atLeastOne(math.Round(distKm / kmPerMinute))
}

func etaFromSeconds(seconds int) int {
	return atLeastOne(math.Round(float64(seconds) / 60))
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
