package domain

import (
	"math"
	"testing"
)

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][2]Coordinate{
		{{Lat: 35.6892, Lon: 51.3890}, {Lat: 36.2605, Lon: 59.6168}},
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
		{{Lat: -33.8688, Lon: 151.2093}, {Lat: 51.5074, Lon: -0.1278}},
		{{Lat: 89.9, Lon: 10}, {Lat: -89.9, Lon: -170}},
	}

	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1])
		ba := DistanceKm(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 {
			t.Fatalf("negative distance %v", ab)
		}
	}
}

func TestDistanceKmZero(t *testing.T) {
	c := Coordinate{Lat: 35.6892, Lon: 51.3890}
	if d := DistanceKm(c, c); d > 1e-9 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

// Tehran to Mashhad is roughly 724 km by great circle.
func TestDistanceKmReference(t *testing.T) {
	tehran := Coordinate{Lat: 35.6892, Lon: 51.3890}
	mashhad := Coordinate{Lat: 36.2605, Lon: 59.6168}

	d := DistanceKm(tehran, mashhad)
	if math.Abs(d-724)/724 > 0.01 {
		t.Fatalf("Tehran-Mashhad distance = %v, want within 1%% of 724", d)
	}
}

func TestNewCoordinateRange(t *testing.T) {
	if _, err := NewCoordinate(91, 0); err == nil {
		t.Fatal("expected error for lat=91")
	}
	if _, err := NewCoordinate(0, -181); err == nil {
		t.Fatal("expected error for lon=-181")
	}
	if _, err := NewCoordinate(-90, 180); err != nil {
		t.Fatalf("unexpected error for boundary values: %v", err)
	}
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("35.6892", "51.3890")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 35.6892 || c.Lon != 51.3890 {
		t.Fatalf("unexpected coordinate %+v", c)
	}

	if _, err := ParseCoordinate("abc", "51.3890"); err == nil {
		t.Fatal("expected error for unparsable latitude")
	}
}

func TestCoordinateKeyRounding(t *testing.T) {
	a := Coordinate{Lat: 35.123456, Lon: 51.987654}
	b := Coordinate{Lat: 35.123459, Lon: 51.987651}
	c := Coordinate{Lat: 35.12357, Lon: 51.987654}

	if a.Key() != b.Key() {
		t.Fatalf("keys differ for coordinates within 5-decimal precision: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Fatalf("keys collide for distinct coordinates: %q", a.Key())
	}
}

func TestNormalizeTravelMode(t *testing.T) {
	if m := NormalizeTravelMode("walk"); m != ModeWalk {
		t.Fatalf("walk normalized to %q", m)
	}
	if m := NormalizeTravelMode("helicopter"); m != ModeCar {
		t.Fatalf("unknown mode normalized to %q, want car", m)
	}
	if m := NormalizeTravelMode(""); m != ModeCar {
		t.Fatalf("empty mode normalized to %q, want car", m)
	}
}
