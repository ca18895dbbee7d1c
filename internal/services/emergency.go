package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"
)

const (
	// Bounded batch of local hospital records considered per query.
	localHospitalCap = 100

	// Search radius for the external places lookup.
	emergencyRadiusMeters = 15000

	// Primary and fallback external categories.
	emergencyCategory         = "hospital"
	emergencyFallbackCategory = "clinic"

	fallbackFacilityName = "emergency facility"
)

// EmergencyLocator aggregates nearest emergency facilities from the local
// store and, when configured, the external places service.
//
// The external source is strictly best-effort: any failure there degrades
// the result to local-only and never fails the query.
type EmergencyLocator struct {
	Places   ports.PlaceRepository
	Provider ports.PlacesProvider
	Speeds   Speeds
}

func NewEmergencyLocator(places ports.PlaceRepository, provider ports.PlacesProvider) *EmergencyLocator {
	return &EmergencyLocator{Places: places, Provider: provider, Speeds: DefaultSpeeds}
}

// NearestEmergency returns up to limit facilities around center, closest
// first. limit is clamped to [1, 20]. Only a local-store failure is
// returned as an error.
func (l *EmergencyLocator) NearestEmergency(ctx context.Context, center domain.Coordinate, limit int) ([]domain.FacilityMatch, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 20 {
		limit = 20
	}

	hospitals, err := l.Places.ListByType(ctx, domain.PlaceHospital, localHospitalCap)
	if err != nil {
		return nil, fmt.Errorf("nearest emergency: list local hospitals: %w", err)
	}

	matches := make([]domain.FacilityMatch, 0, len(hospitals))
	for _, p := range hospitals {
		d := domain.RoundKm(domain.DistanceKm(center, p.Coord))
		matches = append(matches, domain.FacilityMatch{
			PlaceID:    p.PlaceID.String(),
			Name:       p.Name("fa"),
			Address:    p.Address,
			Coord:      p.Coord,
			DistanceKm: d,
			ETAMinutes: minutesAt(d, l.Speeds.Car),
			Source:     domain.SourceLocal,
		})
	}
	sortByDistance(matches)

	matches = l.mergeExternal(ctx, center, limit, matches)

	sortByDistance(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// mergeExternal appends external matches that do not duplicate the closest
// local ones. Two facilities count as the same when their coordinates agree
// to 5 decimal places.
func (l *EmergencyLocator) mergeExternal(ctx context.Context, center domain.Coordinate, limit int, matches []domain.FacilityMatch) []domain.FacilityMatch {
	external, err := l.fetchExternal(ctx, center, limit)
	if err != nil {
		if !errors.Is(err, ports.ErrNotConfigured) {
			log.Printf("emergency external lookup failed, using local results only: %v", err)
		}
		return matches
	}

	seen := make(map[string]struct{}, limit)
	for i, m := range matches {
		if i == limit {
			break
		}
		seen[m.Coord.Key()] = struct{}{}
	}

	for _, raw := range external {
		key := raw.Coord.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		var d float64
		if raw.DistanceMeters != nil {
			d = domain.RoundKm(*raw.DistanceMeters / 1000)
		} else {
			d = domain.RoundKm(domain.DistanceKm(center, raw.Coord))
		}

		name := raw.Name
		if name == "" {
			name = fallbackFacilityName
		}

		matches = append(matches, domain.FacilityMatch{
			Name:       name,
			Address:    raw.Address,
			Coord:      raw.Coord,
			DistanceKm: d,
			ETAMinutes: minutesAt(d, l.Speeds.Car),
			Source:     domain.SourceExternal,
		})
	}
	return matches
}

// fetchExternal queries hospitals first and falls back to clinics when the
// primary category comes back empty.
func (l *EmergencyLocator) fetchExternal(ctx context.Context, center domain.Coordinate, limit int) ([]ports.RawPlace, error) {
	items, err := l.Provider.Nearby(ctx, center, emergencyCategory, emergencyRadiusMeters, 0, limit)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	return l.Provider.Nearby(ctx, center, emergencyFallbackCategory, emergencyRadiusMeters, 0, limit)
}

func sortByDistance(matches []domain.FacilityMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
}
