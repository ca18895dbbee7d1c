package domain

// TravelMode selects the speed model used for an ETA estimate.
type TravelMode string

const (
	ModeCar     TravelMode = "car"
	ModeWalk    TravelMode = "walk"
	ModeTransit TravelMode = "transit"
)

// NormalizeTravelMode maps an arbitrary mode string onto a supported mode.
// Unrecognized values fall back to car, matching the request boundary rule.
func NormalizeTravelMode(s string) TravelMode {
	switch TravelMode(s) {
	case ModeCar, ModeWalk, ModeTransit:
		return TravelMode(s)
	}
	return ModeCar
}

// Provenance tags where a distance/ETA value came from.
type Provenance string

const (
	// The value was returned by the external routing/places service.
	SourceExternal Provenance = "external"
	// The value was computed locally from a haversine distance and a
	// fixed speed heuristic.
	SourceEstimated Provenance = "estimated"
	// The record came from the local store.
	SourceLocal Provenance = "local"
)

// RouteResult is the outcome of a point-to-point travel estimate.
// It is immutable result data created fresh per request and contains
// no side effects. Distances are kilometers rounded to 2 decimals and
// ETAMinutes is always >= 1.
type RouteResult struct {
	SourceID             string
	DestinationID        string
	SourceName           string
	DestinationName      string
	TravelMode           TravelMode
	DistanceKm           float64
	ETAMinutes           int
	ETASource            Provenance
	SourceAmenities      []string
	DestinationAmenities []string
	SourceCoord          Coordinate
	DestinationCoord     Coordinate
}

// FacilityMatch is one entry of a nearest-facility query. PlaceID is empty
// for externally-sourced matches that have no local record.
type FacilityMatch struct {
	PlaceID    string
	Name       string
	Address    string
	Coord      Coordinate
	DistanceKm float64
	ETAMinutes int
	Source     Provenance
}
