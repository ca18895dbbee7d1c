package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"travel-facilities-api/internal/api/dto"
	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"

	"github.com/google/uuid"
)

// PlaceHandler exposes place listing, detail, and rating endpoints.
type PlaceHandler struct {
	Repo     ports.PlaceRepository
	Comments ports.CommentRepository
	Images   ports.ImageRepository
}

const (
	placePageSize = 10
	// Candidate pool when a distance filter trims the page afterwards.
	placeDistancePool = 50
)

// List returns the top places ordered by rating, optionally filtered by
// category, city, minimum rating, price level, and distance from a caller
// supplied coordinate.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()

	filter := ports.PlaceFilter{Limit: placePageSize}

	typeParam := q.Get("type")
	if typeParam == "" {
		typeParam = q.Get("category")
	}
	if typeParam != "" {
		if t, ok := domain.ParsePlaceType(typeParam); ok {
			filter.Type = t
		}
	}
	filter.City = q.Get("city")

	if s := q.Get("min_rating"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 1 && v <= 5 {
			filter.MinRating = v
		}
	}
	if s := q.Get("price_level"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 && v <= 3 {
			filter.PriceLevel = v
		}
	}

	// Optional caller position: attaches distances and enables the
	// max_distance filter. Invalid coordinates are ignored, matching the
	// lenient listing boundary.
	var userCoord *domain.Coordinate
	if latS, lngS := q.Get("lat"), q.Get("lng"); latS != "" && lngS != "" {
		if c, err := domain.ParseCoordinate(latS, lngS); err == nil {
			userCoord = &c
		}
	}

	maxDistKm := 0.0
	if s := q.Get("max_distance"); s != "" && userCoord != nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			maxDistKm = v
			filter.Limit = placeDistancePool
		}
	}

	places, err := h.Repo.ListPlaces(r.Context(), filter)
	if err != nil {
		log.Printf("list places failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlacesResponse{Places: make([]dto.PlaceSummaryResponse, 0, len(places))}
	for _, p := range places {
		item := dto.PlaceSummaryResponse{
			PlaceID:   p.PlaceID.String(),
			Type:      string(p.Type),
			City:      p.City,
			Address:   p.Address,
			Latitude:  p.Coord.Lat,
			Longitude: p.Coord.Lon,
			NameFa:    translationName(p, "fa"),
			NameEn:    translationName(p, "en"),
			Rating:    roundedRating(p.AvgRating),
		}
		if userCoord != nil {
			d := domain.RoundKm(domain.DistanceKm(*userCoord, p.Coord))
			item.DistanceKm = &d
			if maxDistKm > 0 && d > maxDistKm {
				continue
			}
		}
		res.Places = append(res.Places, item)
		if len(res.Places) == placePageSize {
			break
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Detail returns one place with translations, amenities, per-type details,
// latest comments and images.
func (h *PlaceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}

	place, err := h.Repo.GetPlace(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "place not found")
		return
	}
	if err != nil {
		log.Printf("get place failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PlaceDetailResponse{
		PlaceID:      place.PlaceID.String(),
		Type:         string(place.Type),
		City:         place.City,
		Address:      place.Address,
		Latitude:     place.Coord.Lat,
		Longitude:    place.Coord.Lon,
		Rating:       roundedRating(place.AvgRating),
		Translations: make(map[string]dto.TranslationResponse, len(place.Translations)),
		Amenities:    place.Amenities,
		Comments:     []dto.CommentResponse{},
		Images:       []string{},
	}
	for _, t := range place.Translations {
		res.Translations[t.Lang] = dto.TranslationResponse{Name: t.Name, Description: t.Description}
	}
	if place.Hotel != nil {
		res.Hotel = &dto.HotelResponse{Stars: place.Hotel.Stars, PriceRange: place.Hotel.PriceRange}
	}
	if place.Restaurant != nil {
		res.Restaurant = &dto.RestaurantResponse{Cuisine: place.Restaurant.Cuisine, AvgPrice: place.Restaurant.AvgPrice}
	}
	if place.Museum != nil {
		res.Museum = &dto.MuseumResponse{
			OpenAt:      place.Museum.OpenAt,
			CloseAt:     place.Museum.CloseAt,
			TicketPrice: place.Museum.TicketPrice,
		}
	}

	// Comments and images are enrichment: a failure there degrades the
	// detail view instead of failing it.
	comments, err := h.Comments.ListByTarget(r.Context(), domain.TargetPlace, id, 50)
	if err != nil {
		log.Printf("list place comments failed: %v", err)
	}
	for _, c := range comments {
		res.Comments = append(res.Comments, dto.CommentResponse{
			Rating:    c.Rating,
			CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	images, err := h.Images.ListURLs(r.Context(), domain.TargetPlace, id)
	if err != nil {
		log.Printf("list place images failed: %v", err)
	}
	res.Images = append(res.Images, images...)

	writeJSON(w, r, http.StatusOK, res)
}

// Rate stores a 1..5 rating for a place.
func (h *PlaceHandler) Rate(w http.ResponseWriter, r *http.Request) {
	rateTarget(w, r, h.Comments, domain.TargetPlace, func(id uuid.UUID) error {
		_, err := h.Repo.GetPlace(r.Context(), id)
		return err
	})
}

// rateTarget implements the shared rating flow for places and events.
func rateTarget(w http.ResponseWriter, r *http.Request, comments ports.CommentRepository, target domain.TargetType, exists func(uuid.UUID) error) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}

	var req dto.RateRequest
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, r, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	if err := exists(id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "not found")
			return
		}
		log.Printf("rate target lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := comments.AddRating(r.Context(), target, id, req.Rating); err != nil {
		log.Printf("add rating failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]string{"status": "ok"})
}

func translationName(p *domain.Place, lang string) string {
	for _, t := range p.Translations {
		if t.Lang == lang {
			return t.Name
		}
	}
	return ""
}

func roundedRating(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := float64(int(*v*10+0.5)) / 10
	return &r
}
