package domain

import (
	"time"

	"github.com/google/uuid"
)

// Localized title and description of an event.
type EventTranslation struct {
	Lang        string
	Title       string
	Description string
}

// Event is a dated happening at a fixed location.
type Event struct {
	EventID      uuid.UUID
	City         string
	Address      string
	Coord        Coordinate
	StartAt      time.Time
	EndAt        time.Time
	Translations []EventTranslation
}

// Title returns the event title for lang, falling back to any translation.
func (e *Event) Title(lang string) string {
	for _, t := range e.Translations {
		if t.Lang == lang && t.Title != "" {
			return t.Title
		}
	}
	for _, t := range e.Translations {
		if t.Title != "" {
			return t.Title
		}
	}
	return e.EventID.String()
}
