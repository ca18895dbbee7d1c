package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Mean Earth radius in kilometers, used for great-circle distances.
const earthRadiusKm = 6371.0

// Immutable geographic coordinate (latitude, longitude) in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

var ErrInvalidCoordinate = errors.New("coordinate out of range")

// NewCoordinate validates the latitude/longitude ranges.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinate, lat, lon)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// ParseCoordinate parses latitude/longitude string literals from a request boundary.
func ParseCoordinate(latStr, lonStr string) (Coordinate, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse longitude %q: %w", lonStr, err)
	}
	return NewCoordinate(lat, lon)
}

// Return the coordinate as [lon, lat] for external API compatibility.
func (c Coordinate) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Key returns a dedup key rounded to 5 decimal places (~1.1 m precision).
// Records from different sources describing the same physical location
// collapse onto the same key.
func (c Coordinate) Key() string {
	return strconv.FormatFloat(round5(c.Lat), 'f', 5, 64) + "," +
		strconv.FormatFloat(round5(c.Lon), 'f', 5, 64)
}

// DistanceKm computes the haversine great-circle distance between two
// coordinates in kilometers.
func DistanceKm(a, b Coordinate) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	dPhi := radians(b.Lat - a.Lat)
	dLam := radians(b.Lon - a.Lon)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLam/2)*math.Sin(dLam/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// RoundKm rounds a distance to 2 decimals, the precision used for every
// distance reported by this service regardless of its source.
func RoundKm(v float64) float64 { return math.Round(v*100) / 100 }

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func round5(v float64) float64 { return math.Round(v*1e5) / 1e5 }
