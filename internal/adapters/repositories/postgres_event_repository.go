package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the EventRepository port.
type PostgresEventRepository struct{ DB *sql.DB }

func NewPostgresEventRepository(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{DB: db}
}

// ListEvents returns up to limit events ordered by start time, newest first.
func (s *PostgresEventRepository) ListEvents(ctx context.Context, limit int) ([]*domain.Event, error) {
	if s.DB == nil {
		return nil, errors.New("event repository: db is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	q := `
	SELECT event_id, city, address, latitude, longitude, start_at, end_at
	FROM events
	ORDER BY start_at DESC
	LIMIT $1
	`
	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: query: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: row iteration: %w", err)
	}

	if err := s.attachTranslations(ctx, events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetEvent returns one event with translations, or ErrNotFound.
func (s *PostgresEventRepository) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if s.DB == nil {
		return nil, errors.New("event repository: db is nil")
	}

	q := `
	SELECT event_id, city, address, latitude, longitude, start_at, end_at
	FROM events
	WHERE event_id = $1
	`
	row := s.DB.QueryRowContext(ctx, q, id.String())
	e, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}

	if err := s.attachTranslations(ctx, []*domain.Event{e}); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func scanEvent(scan func(...any) error) (*domain.Event, error) {
	var (
		e     domain.Event
		idStr string
	)
	if err := scan(&idStr, &e.City, &e.Address, &e.Coord.Lat, &e.Coord.Lon, &e.StartAt, &e.EndAt); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse event id %q: %w", idStr, err)
	}
	e.EventID = id
	return &e, nil
}

func (s *PostgresEventRepository) attachTranslations(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]string, 0, len(events))
	byID := make(map[string]*domain.Event, len(events))
	for _, e := range events {
		id := e.EventID.String()
		ids = append(ids, id)
		byID[id] = e
	}

	q := `
	SELECT event_id, lang, title, description
	FROM event_translations
	WHERE event_id = ANY($1::uuid[])
	ORDER BY lang
	`
	rows, err := s.DB.QueryContext(ctx, q, ids)
	if err != nil {
		return fmt.Errorf("query event translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			idStr string
			t     domain.EventTranslation
		)
		if err := rows.Scan(&idStr, &t.Lang, &t.Title, &t.Description); err != nil {
			return fmt.Errorf("scan event translation: %w", err)
		}
		if e, ok := byID[idStr]; ok {
			e.Translations = append(e.Translations, t)
		}
	}
	return rows.Err()
}
