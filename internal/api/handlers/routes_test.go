package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-facilities-api/internal/api/dto"
	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"
	"travel-facilities-api/internal/services"

	"github.com/google/uuid"
)

type fakePlaceRepo struct {
	places map[uuid.UUID]*domain.Place
	list   []*domain.Place
}

func (f *fakePlaceRepo) ListPlaces(ctx context.Context, filter ports.PlaceFilter) ([]*domain.Place, error) {
	return f.list, nil
}

func (f *fakePlaceRepo) GetPlace(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	p, ok := f.places[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return p, nil
}

func (f *fakePlaceRepo) ListByType(ctx context.Context, t domain.PlaceType, limit int) ([]*domain.Place, error) {
	return nil, nil
}

type fakeProvider struct {
	leg ports.RouteLeg
	err error
}

func (f *fakeProvider) FetchRoute(ctx context.Context, origin, destination domain.Coordinate) (ports.RouteLeg, error) {
	return f.leg, f.err
}

type fakeRouteLog struct {
	added chan domain.TravelMode
}

func (f *fakeRouteLog) Add(ctx context.Context, userID *uuid.UUID, sourceID, destinationID uuid.UUID, mode domain.TravelMode) error {
	f.added <- mode
	return nil
}

func testPlace(id uuid.UUID, lat, lon float64, nameFa string) *domain.Place {
	return &domain.Place{
		PlaceID:      id,
		Type:         domain.PlaceMuseum,
		City:         "Tehran",
		Coord:        domain.Coordinate{Lat: lat, Lon: lon},
		Translations: []domain.Translation{{Lang: "fa", Name: nameFa}},
		Amenities:    []string{"parking"},
	}
}

func newRouteHandler(repo *fakePlaceRepo, provider ports.RouteProvider, routeLog ports.RouteLogRepository) *RouteHandler {
	return &RouteHandler{
		Estimator: services.NewRouteEstimator(provider),
		Places:    repo,
		RouteLog:  routeLog,
	}
}

func TestRouteBetweenStoredPlaces(t *testing.T) {
	srcID, dstID := uuid.New(), uuid.New()
	repo := &fakePlaceRepo{places: map[uuid.UUID]*domain.Place{
		srcID: testPlace(srcID, 35.6892, 51.3890, "مبدا"),
		dstID: testPlace(dstID, 35.7448, 51.3753, "مقصد"),
	}}
	routeLog := &fakeRouteLog{added: make(chan domain.TravelMode, 1)}
	h := newRouteHandler(repo, &fakeProvider{leg: ports.RouteLeg{DistanceKm: 8.4, DurationSeconds: 720}}, routeLog)

	req := httptest.NewRequest(http.MethodGet, "/routes?source_place_id="+srcID.String()+"&destination_place_id="+dstID.String()+"&travel_mode=car", nil)
	rec := httptest.NewRecorder()
	h.Route(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.RouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ETASource != "external" {
		t.Errorf("eta_source = %q, want external", res.ETASource)
	}
	if res.DistanceKm != 8.4 {
		t.Errorf("distance_km = %v, want 8.4", res.DistanceKm)
	}
	if res.ETAMinutes != 12 {
		t.Errorf("eta_minutes = %d, want 12", res.ETAMinutes)
	}
	if res.SourceName != "مبدا" || res.DestinationName != "مقصد" {
		t.Errorf("names = %q, %q", res.SourceName, res.DestinationName)
	}

	select {
	case mode := <-routeLog.added:
		if mode != domain.ModeCar {
			t.Errorf("logged mode = %q, want car", mode)
		}
	case <-time.After(time.Second):
		t.Error("route log entry was never written")
	}
}

func TestRouteUnknownPlaceReturns404(t *testing.T) {
	repo := &fakePlaceRepo{places: map[uuid.UUID]*domain.Place{}}
	h := newRouteHandler(repo, &fakeProvider{err: ports.ErrNotConfigured}, &fakeRouteLog{added: make(chan domain.TravelMode, 1)})

	req := httptest.NewRequest(http.MethodGet, "/routes?source_place_id="+uuid.NewString()+"&destination_place_id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	h.Route(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRouteRawCoordinates(t *testing.T) {
	repo := &fakePlaceRepo{places: map[uuid.UUID]*domain.Place{}}
	h := newRouteHandler(repo, &fakeProvider{err: ports.ErrNotConfigured}, &fakeRouteLog{added: make(chan domain.TravelMode, 1)})

	req := httptest.NewRequest(http.MethodGet, "/routes?source_lat=35.6892&source_lng=51.3890&dest_lat=35.7448&dest_lng=51.3753&travel_mode=walk", nil)
	rec := httptest.NewRecorder()
	h.Route(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.RouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ETASource != "estimated" {
		t.Errorf("eta_source = %q, want estimated", res.ETASource)
	}
	if res.TravelMode != "walk" {
		t.Errorf("travel_mode = %q, want walk", res.TravelMode)
	}
	if res.SourcePlaceID != "" {
		t.Errorf("source_place_id = %q, want empty for raw coordinates", res.SourcePlaceID)
	}
}

func TestRouteMixedParamsRejected(t *testing.T) {
	repo := &fakePlaceRepo{places: map[uuid.UUID]*domain.Place{}}
	h := newRouteHandler(repo, &fakeProvider{}, &fakeRouteLog{added: make(chan domain.TravelMode, 1)})

	req := httptest.NewRequest(http.MethodGet, "/routes?source_place_id="+uuid.NewString()+"&dest_lat=35.7&dest_lng=51.4", nil)
	rec := httptest.NewRecorder()
	h.Route(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRouteInvalidCoordinatesRejected(t *testing.T) {
	repo := &fakePlaceRepo{places: map[uuid.UUID]*domain.Place{}}
	h := newRouteHandler(repo, &fakeProvider{}, &fakeRouteLog{added: make(chan domain.TravelMode, 1)})

	req := httptest.NewRequest(http.MethodGet, "/routes?source_lat=95&source_lng=51.4&dest_lat=35.7&dest_lng=51.4", nil)
	rec := httptest.NewRecorder()
	h.Route(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRouteUnknownModeFallsBackToCar(t *testing.T) {
	srcID, dstID := uuid.New(), uuid.New()
	repo := &fakePlaceRepo{places: map[uuid.UUID]*domain.Place{
		srcID: testPlace(srcID, 35.6892, 51.3890, "a"),
		dstID: testPlace(dstID, 35.7448, 51.3753, "b"),
	}}
	routeLog := &fakeRouteLog{added: make(chan domain.TravelMode, 1)}
	h := newRouteHandler(repo, &fakeProvider{err: ports.ErrNotConfigured}, routeLog)

	req := httptest.NewRequest(http.MethodGet, "/routes?source_place_id="+srcID.String()+"&destination_place_id="+dstID.String()+"&travel_mode=teleport", nil)
	rec := httptest.NewRecorder()
	h.Route(rec, req)

	var res dto.RouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TravelMode != "car" {
		t.Errorf("travel_mode = %q, want car", res.TravelMode)
	}
	<-routeLog.added
}
