package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"travel-facilities-api/internal/domain"

	"github.com/google/uuid"
)

// Initialize the Postgres schema. Statements are idempotent so both the
// server and dbtool can run this on startup.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS places (
			place_id UUID PRIMARY KEY,
			type TEXT NOT NULL,
			city TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS place_translations (
			place_id UUID NOT NULL REFERENCES places(place_id) ON DELETE CASCADE,
			lang TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (place_id, lang)
		);`,

		`CREATE TABLE IF NOT EXISTS place_amenities (
			place_id UUID NOT NULL REFERENCES places(place_id) ON DELETE CASCADE,
			amenity_name TEXT NOT NULL,
			PRIMARY KEY (place_id, amenity_name)
		);`,

		`CREATE TABLE IF NOT EXISTS hotel_details (
			place_id UUID PRIMARY KEY REFERENCES places(place_id) ON DELETE CASCADE,
			stars SMALLINT,
			price_range TEXT NOT NULL DEFAULT ''
		);`,

		`CREATE TABLE IF NOT EXISTS restaurant_details (
			place_id UUID PRIMARY KEY REFERENCES places(place_id) ON DELETE CASCADE,
			cuisine TEXT NOT NULL DEFAULT '',
			avg_price INTEGER
		);`,

		`CREATE TABLE IF NOT EXISTS museum_details (
			place_id UUID PRIMARY KEY REFERENCES places(place_id) ON DELETE CASCADE,
			open_at TEXT NOT NULL DEFAULT '',
			close_at TEXT NOT NULL DEFAULT '',
			ticket_price INTEGER
		);`,

		`CREATE TABLE IF NOT EXISTS events (
			event_id UUID PRIMARY KEY,
			city TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			start_at TIMESTAMPTZ NOT NULL,
			end_at TIMESTAMPTZ NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS event_translations (
			event_id UUID NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
			lang TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (event_id, lang)
		);`,

		`CREATE TABLE IF NOT EXISTS images (
			image_id UUID PRIMARY KEY,
			target_type TEXT NOT NULL,
			target_id UUID NOT NULL,
			image_url TEXT NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS comments (
			comment_id UUID PRIMARY KEY,
			target_type TEXT NOT NULL,
			target_id UUID NOT NULL,
			rating SMALLINT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,

		`CREATE TABLE IF NOT EXISTS contributions (
			contribution_id UUID PRIMARY KEY,
			type TEXT NOT NULL,
			name_fa TEXT NOT NULL,
			name_en TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			submitted_by UUID,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,

		`CREATE TABLE IF NOT EXISTS route_logs (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID,
			source_place_id UUID NOT NULL,
			destination_place_id UUID NOT NULL,
			travel_mode TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,

		`CREATE INDEX IF NOT EXISTS idx_places_type ON places(type);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_target ON comments(target_type, target_id);`,
		`CREATE INDEX IF NOT EXISTS idx_route_logs_user ON route_logs(user_id);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type placeSeed struct {
	PlaceID   string  `json:"place_id"`
	Type      string  `json:"type"`
	City      string  `json:"city"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	NameFa    string  `json:"name_fa"`
	NameEn    string  `json:"name_en"`
	Amenities []string `json:"amenities"`
}

type seedFile struct {
	Places []placeSeed `json:"places"`
}

// Populate the database with place data from a JSON file. Existing rows
// with the same identifier are replaced.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	placeStmt, err := tx.Prepare(`
	INSERT INTO places (place_id, type, city, address, latitude, longitude)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (place_id) DO UPDATE
	SET type = EXCLUDED.type,
		city = EXCLUDED.city,
		address = EXCLUDED.address,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude;
	`)
	if err != nil {
		return fmt.Errorf("seed places: prepare place insert: %w", err)
	}
	defer placeStmt.Close()

	transStmt, err := tx.Prepare(`
	INSERT INTO place_translations (place_id, lang, name, description)
	VALUES ($1, $2, $3, '')
	ON CONFLICT (place_id, lang) DO UPDATE SET name = EXCLUDED.name;
	`)
	if err != nil {
		return fmt.Errorf("seed places: prepare translation insert: %w", err)
	}
	defer transStmt.Close()

	amenityStmt, err := tx.Prepare(`
	INSERT INTO place_amenities (place_id, amenity_name)
	VALUES ($1, $2)
	ON CONFLICT DO NOTHING;
	`)
	if err != nil {
		return fmt.Errorf("seed places: prepare amenity insert: %w", err)
	}
	defer amenityStmt.Close()

	for i, item := range data.Places {
		if _, ok := domain.ParsePlaceType(item.Type); !ok {
			return fmt.Errorf("seed places: item %d: unknown type %q", i+1, item.Type)
		}
		if _, err := domain.NewCoordinate(item.Latitude, item.Longitude); err != nil {
			return fmt.Errorf("seed places: item %d: %w", i+1, err)
		}

		id := strings.TrimSpace(item.PlaceID)
		if id == "" {
			id = uuid.New().String()
		} else if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("seed places: item %d: invalid place_id %q: %w", i+1, item.PlaceID, err)
		}

		if _, err := placeStmt.Exec(id, item.Type, item.City, item.Address, item.Latitude, item.Longitude); err != nil {
			return fmt.Errorf("seed places: insert place_id=%s: %w", id, err)
		}

		if name := strings.TrimSpace(item.NameFa); name != "" {
			if _, err := transStmt.Exec(id, "fa", name); err != nil {
				return fmt.Errorf("seed places: insert fa name for %s: %w", id, err)
			}
		}
		if name := strings.TrimSpace(item.NameEn); name != "" {
			if _, err := transStmt.Exec(id, "en", name); err != nil {
				return fmt.Errorf("seed places: insert en name for %s: %w", id, err)
			}
		}
		for _, a := range item.Amenities {
			if a = strings.TrimSpace(a); a == "" {
				continue
			}
			if _, err := amenityStmt.Exec(id, a); err != nil {
				return fmt.Errorf("seed places: insert amenity for %s: %w", id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}
