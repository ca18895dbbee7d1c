package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category of a stored point of interest.
type PlaceType string

const (
	PlaceEntertainment PlaceType = "entertainment"
	PlaceFood          PlaceType = "food"
	PlaceHospital      PlaceType = "hospital"
	PlaceMuseum        PlaceType = "museum"
	PlaceHotel         PlaceType = "hotel"
)

// ParsePlaceType reports whether s names a known place category.
func ParsePlaceType(s string) (PlaceType, bool) {
	switch PlaceType(s) {
	case PlaceEntertainment, PlaceFood, PlaceHospital, PlaceMuseum, PlaceHotel:
		return PlaceType(s), true
	}
	return "", false
}

// Localized name and description of a place.
type Translation struct {
	Lang        string
	Name        string
	Description string
}

type HotelDetails struct {
	Stars      *int
	PriceRange string
}

type RestaurantDetails struct {
	Cuisine  string
	AvgPrice *int
}

type MuseumDetails struct {
	OpenAt      string
	CloseAt     string
	TicketPrice *int
}

// Place is a stored point of interest. Translations carry the localized
// display names; the per-category detail structs are nil when the place is
// not of that category.
type Place struct {
	PlaceID      uuid.UUID
	Type         PlaceType
	City         string
	Address      string
	Coord        Coordinate
	Translations []Translation
	Amenities    []string
	Hotel        *HotelDetails
	Restaurant   *RestaurantDetails
	Museum       *MuseumDetails
	AvgRating    *float64
}

// Name returns the display name for lang, falling back to any other
// translation and finally to the place identifier.
func (p *Place) Name(lang string) string {
	for _, t := range p.Translations {
		if t.Lang == lang && t.Name != "" {
			return t.Name
		}
	}
	for _, t := range p.Translations {
		if t.Name != "" {
			return t.Name
		}
	}
	return p.PlaceID.String()
}

// Crowd-sourced place submission awaiting moderation.
type Contribution struct {
	ContributionID uuid.UUID
	Type           PlaceType
	NameFa         string
	NameEn         string
	City           string
	Address        string
	Coord          Coordinate
	SubmittedBy    *uuid.UUID
	SubmittedAt    time.Time
}
