package handlers

import (
	"errors"
	"log"
	"net/http"

	"travel-facilities-api/internal/api/dto"
	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"

	"github.com/google/uuid"
)

// EventHandler exposes event listing, detail, and rating endpoints.
type EventHandler struct {
	Repo     ports.EventRepository
	Comments ports.CommentRepository
	Images   ports.ImageRepository
}

const eventPageSize = 20

// List returns the latest events, newest first.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	events, err := h.Repo.ListEvents(r.Context(), eventPageSize)
	if err != nil {
		log.Printf("list events failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListEventsResponse{Events: make([]dto.EventSummaryResponse, 0, len(events))}
	for _, e := range events {
		res.Events = append(res.Events, dto.EventSummaryResponse{
			EventID:   e.EventID.String(),
			City:      e.City,
			Latitude:  e.Coord.Lat,
			Longitude: e.Coord.Lon,
			StartAt:   e.StartAt,
			EndAt:     e.EndAt,
			TitleFa:   eventTranslation(e, "fa").Title,
			TitleEn:   eventTranslation(e, "en").Title,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Detail returns one event with translations, comments, and images.
func (h *EventHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}

	event, err := h.Repo.GetEvent(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		log.Printf("get event failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	fa := eventTranslation(event, "fa")
	en := eventTranslation(event, "en")
	res := dto.EventDetailResponse{
		EventID:       event.EventID.String(),
		City:          event.City,
		Address:       event.Address,
		Latitude:      event.Coord.Lat,
		Longitude:     event.Coord.Lon,
		StartAt:       event.StartAt,
		EndAt:         event.EndAt,
		TitleFa:       fa.Title,
		TitleEn:       en.Title,
		DescriptionFa: fa.Description,
		DescriptionEn: en.Description,
		Comments:      []dto.CommentResponse{},
		Images:        []string{},
	}

	comments, err := h.Comments.ListByTarget(r.Context(), domain.TargetEvent, id, 50)
	if err != nil {
		log.Printf("list event comments failed: %v", err)
	}
	for _, c := range comments {
		res.Comments = append(res.Comments, dto.CommentResponse{
			Rating:    c.Rating,
			CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	images, err := h.Images.ListURLs(r.Context(), domain.TargetEvent, id)
	if err != nil {
		log.Printf("list event images failed: %v", err)
	}
	res.Images = append(res.Images, images...)

	writeJSON(w, r, http.StatusOK, res)
}

// Rate stores a 1..5 rating for an event.
func (h *EventHandler) Rate(w http.ResponseWriter, r *http.Request) {
	rateTarget(w, r, h.Comments, domain.TargetEvent, func(id uuid.UUID) error {
		_, err := h.Repo.GetEvent(r.Context(), id)
		return err
	})
}

func eventTranslation(e *domain.Event, lang string) domain.EventTranslation {
	for _, t := range e.Translations {
		if t.Lang == lang {
			return t
		}
	}
	return domain.EventTranslation{}
}
