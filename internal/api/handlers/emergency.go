package handlers

import (
	"log"
	"net/http"
	"strconv"

	"travel-facilities-api/internal/api/dto"
	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/services"
)

// Tehran city center, used when the caller omits coordinates.
const (
	defaultEmergencyLat = 35.6892
	defaultEmergencyLon = 51.3890

	defaultEmergencyLimit = 10
)

// EmergencyHandler answers nearest-emergency-facility queries.
type EmergencyHandler struct {
	Locator *services.EmergencyLocator
}

func (h *EmergencyHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()

	center := domain.Coordinate{Lat: defaultEmergencyLat, Lon: defaultEmergencyLon}
	if latS, lonS := q.Get("lat"), q.Get("lon"); latS != "" || lonS != "" {
		c, err := domain.ParseCoordinate(latS, lonS)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid coordinates")
			return
		}
		center = c
	}

	limit := defaultEmergencyLimit
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	matches, err := h.Locator.NearestEmergency(r.Context(), center, limit)
	if err != nil {
		log.Printf("nearest emergency lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.EmergencyResponse{EmergencyPlaces: make([]dto.FacilityResponse, 0, len(matches))}
	for _, m := range matches {
		res.EmergencyPlaces = append(res.EmergencyPlaces, dto.FacilityResponse{
			PlaceID:    m.PlaceID,
			Name:       m.Name,
			Address:    m.Address,
			Latitude:   m.Coord.Lat,
			Longitude:  m.Coord.Lon,
			DistanceKm: m.DistanceKm,
			ETAMinutes: m.ETAMinutes,
			Source:     string(m.Source),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
