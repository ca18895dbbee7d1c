package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"travel-facilities-api/internal/api/dto"
	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"
	"travel-facilities-api/internal/services"

	"github.com/google/uuid"
)

// RouteHandler answers route/ETA queries between two stored places or two
// raw coordinate pairs.
type RouteHandler struct {
	Estimator *services.RouteEstimator
	Places    ports.PlaceRepository
	RouteLog  ports.RouteLogRepository
}

func (h *RouteHandler) Route(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	mode := domain.NormalizeTravelMode(q.Get("travel_mode"))
	lang := q.Get("lang")
	if lang == "" {
		lang = "fa"
	}

	srcID, dstID := q.Get("source_place_id"), q.Get("destination_place_id")

	var source, destination services.Endpoint
	stored := srcID != "" && dstID != ""
	switch {
	case stored:
		var ok bool
		if source, ok = h.resolvePlace(w, r, srcID, lang); !ok {
			return
		}
		if destination, ok = h.resolvePlace(w, r, dstID, lang); !ok {
			return
		}
	case srcID == "" && dstID == "":
		var err error
		source, err = rawEndpoint(q.Get("source_lat"), q.Get("source_lng"), q.Get("source_name"))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid source coordinates")
			return
		}
		destination, err = rawEndpoint(q.Get("dest_lat"), q.Get("dest_lng"), q.Get("dest_name"))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid destination coordinates")
			return
		}
	default:
		writeError(w, r, http.StatusBadRequest, "provide both source_place_id and destination_place_id, or neither")
		return
	}

	result := h.Estimator.Estimate(r.Context(), source, destination, mode)

	if stored {
		h.logRoute(source.ID, destination.ID, mode)
	}

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{
		SourcePlaceID:        result.SourceID,
		DestinationPlaceID:   result.DestinationID,
		SourceName:           result.SourceName,
		DestinationName:      result.DestinationName,
		TravelMode:           string(result.TravelMode),
		DistanceKm:           result.DistanceKm,
		ETAMinutes:           result.ETAMinutes,
		ETASource:            string(result.ETASource),
		SourceAmenities:      emptyIfNil(result.SourceAmenities),
		DestinationAmenities: emptyIfNil(result.DestinationAmenities),
		SourceLat:            result.SourceCoord.Lat,
		SourceLng:            result.SourceCoord.Lon,
		DestLat:              result.DestinationCoord.Lat,
		DestLng:              result.DestinationCoord.Lon,
	})
}

// resolvePlace loads a stored place as a route endpoint, writing the HTTP
// error itself when the id is malformed or unknown.
func (h *RouteHandler) resolvePlace(w http.ResponseWriter, r *http.Request, rawID, lang string) (services.Endpoint, bool) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid place id")
		return services.Endpoint{}, false
	}
	place, err := h.Places.GetPlace(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "place not found")
		return services.Endpoint{}, false
	}
	if err != nil {
		log.Printf("resolve route place failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return services.Endpoint{}, false
	}
	return services.EndpointFromPlace(place, lang), true
}

// logRoute appends to the route log without blocking or failing the request.
func (h *RouteHandler) logRoute(sourceID, destinationID string, mode domain.TravelMode) {
	src, err1 := uuid.Parse(sourceID)
	dst, err2 := uuid.Parse(destinationID)
	if err1 != nil || err2 != nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.RouteLog.Add(ctx, nil, src, dst, mode); err != nil {
			log.Printf("route log insert failed: %v", err)
		}
	}()
}

func rawEndpoint(latS, lngS, name string) (services.Endpoint, error) {
	coord, err := domain.ParseCoordinate(latS, lngS)
	if err != nil {
		return services.Endpoint{}, err
	}
	if name == "" {
		name = coord.Key()
	}
	return services.Endpoint{Name: name, Coord: coord}, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
