package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"travel-facilities-api/internal/api/dto"
	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"

	"github.com/google/uuid"
)

// ContributionHandler exposes crowd-sourced place submissions and their
// moderation endpoints.
type ContributionHandler struct {
	Repo ports.ContributionRepository
}

const contributionPageSize = 50

// Submit stores a new pending contribution.
func (h *ContributionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContributionRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	placeType, ok := domain.ParsePlaceType(req.Type)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown place type")
		return
	}
	if strings.TrimSpace(req.NameFa) == "" {
		writeError(w, r, http.StatusBadRequest, "name_fa is required")
		return
	}
	coord, err := domain.NewCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid coordinates")
		return
	}

	c := &domain.Contribution{
		ContributionID: uuid.New(),
		Type:           placeType,
		NameFa:         strings.TrimSpace(req.NameFa),
		NameEn:         strings.TrimSpace(req.NameEn),
		City:           strings.TrimSpace(req.City),
		Address:        strings.TrimSpace(req.Address),
		Coord:          coord,
		SubmittedAt:    time.Now().UTC(),
	}
	if err := h.Repo.Create(r.Context(), c); err != nil {
		log.Printf("create contribution failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, contributionResponse(c))
}

// List returns pending contributions awaiting moderation, oldest first.
func (h *ContributionHandler) List(w http.ResponseWriter, r *http.Request) {
	contributions, err := h.Repo.List(r.Context(), contributionPageSize)
	if err != nil {
		log.Printf("list contributions failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListContributionsResponse{Contributions: make([]dto.ContributionResponse, 0, len(contributions))}
	for _, c := range contributions {
		res.Contributions = append(res.Contributions, contributionResponse(c))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Collection dispatches /contributions by method.
func (h *ContributionHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Submit(w, r)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Approve promotes a contribution into a live place.
func (h *ContributionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}

	place, err := h.Repo.Approve(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "contribution not found")
		return
	}
	if err != nil {
		log.Printf("approve contribution failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ApproveResponse{PlaceID: place.PlaceID.String()})
}

// Reject removes a pending contribution.
func (h *ContributionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}

	if err := h.Repo.Reject(r.Context(), id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "contribution not found")
			return
		}
		log.Printf("reject contribution failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "rejected"})
}

func contributionResponse(c *domain.Contribution) dto.ContributionResponse {
	return dto.ContributionResponse{
		ContributionID: c.ContributionID.String(),
		Type:           string(c.Type),
		NameFa:         c.NameFa,
		NameEn:         c.NameEn,
		City:           c.City,
		Address:        c.Address,
		Latitude:       c.Coord.Lat,
		Longitude:      c.Coord.Lon,
		SubmittedAt:    c.SubmittedAt,
	}
}
