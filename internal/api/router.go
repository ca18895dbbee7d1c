package api

import (
	"net/http"

	"travel-facilities-api/internal/api/handlers"
	"travel-facilities-api/internal/ports"
	"travel-facilities-api/internal/services"
)

// Deps bundles everything the HTTP layer needs. Handlers stay unaware of
// concrete adapters; only this composition root sees the full wiring.
type Deps struct {
	Places        ports.PlaceRepository
	Events        ports.EventRepository
	Comments      ports.CommentRepository
	Images        ports.ImageRepository
	Contributions ports.ContributionRepository
	RouteLog      ports.RouteLogRepository
	Estimator     *services.RouteEstimator
	Emergency     *services.EmergencyLocator
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	placeHandler := &handlers.PlaceHandler{Repo: d.Places, Comments: d.Comments, Images: d.Images}
	eventHandler := &handlers.EventHandler{Repo: d.Events, Comments: d.Comments, Images: d.Images}
	routeHandler := &handlers.RouteHandler{Estimator: d.Estimator, Places: d.Places, RouteLog: d.RouteLog}
	emergencyHandler := &handlers.EmergencyHandler{Locator: d.Emergency}
	contribHandler := &handlers.ContributionHandler{Repo: d.Contributions}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("/places", placeHandler.List)
	mux.HandleFunc("/places/{id}", placeHandler.Detail)
	mux.HandleFunc("/places/{id}/rate", placeHandler.Rate)

	mux.HandleFunc("/events", eventHandler.List)
	mux.HandleFunc("/events/{id}", eventHandler.Detail)
	mux.HandleFunc("/events/{id}/rate", eventHandler.Rate)

	mux.HandleFunc("/routes", routeHandler.Route)
	mux.HandleFunc("/emergency", emergencyHandler.Nearest)

	mux.HandleFunc("/contributions", contribHandler.Collection)
	mux.HandleFunc("/contributions/{id}/approve", contribHandler.Approve)
	mux.HandleFunc("/contributions/{id}/reject", contribHandler.Reject)

	return loggingMiddleware(mux)
}
