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

// Postgres-backed implementation of the ContributionRepository port.
type PostgresContributionRepository struct{ DB *sql.DB }

func NewPostgresContributionRepository(db *sql.DB) *PostgresContributionRepository {
	return &PostgresContributionRepository{DB: db}
}

// Create stores a pending contribution.
func (s *PostgresContributionRepository) Create(ctx context.Context, c *domain.Contribution) error {
	if s.DB == nil {
		return errors.New("contribution repository: db is nil")
	}

	if c.ContributionID == uuid.Nil {
		c.ContributionID = uuid.New()
	}

	var submittedBy any
	if c.SubmittedBy != nil {
		submittedBy = c.SubmittedBy.String()
	}

	q := `
	INSERT INTO contributions (contribution_id, type, name_fa, name_en, city, address, latitude, longitude, submitted_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.DB.ExecContext(ctx, q,
		c.ContributionID.String(), string(c.Type), c.NameFa, c.NameEn,
		c.City, c.Address, c.Coord.Lat, c.Coord.Lon, submittedBy,
	)
	if err != nil {
		return fmt.Errorf("create contribution: %w", err)
	}
	return nil
}

// List returns pending contributions, oldest first.
func (s *PostgresContributionRepository) List(ctx context.Context, limit int) ([]*domain.Contribution, error) {
	if s.DB == nil {
		return nil, errors.New("contribution repository: db is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	q := `
	SELECT contribution_id, type, name_fa, name_en, city, address, latitude, longitude, submitted_by, submitted_at
	FROM contributions
	ORDER BY submitted_at
	LIMIT $1
	`
	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Contribution
	for rows.Next() {
		var (
			c           domain.Contribution
			idStr       string
			submittedBy sql.NullString
		)
		if err := rows.Scan(&idStr, &c.Type, &c.NameFa, &c.NameEn, &c.City, &c.Address,
			&c.Coord.Lat, &c.Coord.Lon, &submittedBy, &c.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		if c.ContributionID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("parse contribution id %q: %w", idStr, err)
		}
		if submittedBy.Valid {
			if uid, err := uuid.Parse(submittedBy.String); err == nil {
				c.SubmittedBy = &uid
			}
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contribution row iteration: %w", err)
	}
	return out, nil
}

// Approve promotes a contribution into a Place with its translations and
// removes the pending row in one transaction.
func (s *PostgresContributionRepository) Approve(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("contribution repository: db is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("approve contribution: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var c domain.Contribution
	err = tx.QueryRowContext(ctx, `
	SELECT type, name_fa, name_en, city, address, latitude, longitude
	FROM contributions
	WHERE contribution_id = $1
	FOR UPDATE
	`, id.String()).Scan(&c.Type, &c.NameFa, &c.NameEn, &c.City, &c.Address, &c.Coord.Lat, &c.Coord.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("approve contribution %s: load: %w", id, err)
	}

	place := &domain.Place{
		PlaceID: uuid.New(),
		Type:    c.Type,
		City:    c.City,
		Address: c.Address,
		Coord:   c.Coord,
	}

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO places (place_id, type, city, address, latitude, longitude)
	VALUES ($1, $2, $3, $4, $5, $6)
	`, place.PlaceID.String(), string(place.Type), place.City, place.Address,
		place.Coord.Lat, place.Coord.Lon); err != nil {
		return nil, fmt.Errorf("approve contribution %s: insert place: %w", id, err)
	}

	insertTranslation := func(lang, name string) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO place_translations (place_id, lang, name, description)
		VALUES ($1, $2, $3, '')
		`, place.PlaceID.String(), lang, name)
		return err
	}

	if err := insertTranslation("fa", c.NameFa); err != nil {
		return nil, fmt.Errorf("approve contribution %s: insert fa translation: %w", id, err)
	}
	place.Translations = append(place.Translations, domain.Translation{Lang: "fa", Name: c.NameFa})

	if c.NameEn != "" {
		if err := insertTranslation("en", c.NameEn); err != nil {
			return nil, fmt.Errorf("approve contribution %s: insert en translation: %w", id, err)
		}
		place.Translations = append(place.Translations, domain.Translation{Lang: "en", Name: c.NameEn})
	}

	// Contributed images become place images.
	if _, err := tx.ExecContext(ctx, `
	UPDATE images SET target_type = 'place', target_id = $1
	WHERE target_type = 'pending_place' AND target_id = $2
	`, place.PlaceID.String(), id.String()); err != nil {
		return nil, fmt.Errorf("approve contribution %s: move images: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `
	DELETE FROM contributions WHERE contribution_id = $1
	`, id.String()); err != nil {
		return nil, fmt.Errorf("approve contribution %s: delete: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("approve contribution %s: commit: %w", id, err)
	}
	return place, nil
}

// Reject removes the pending contribution.
func (s *PostgresContributionRepository) Reject(ctx context.Context, id uuid.UUID) error {
	if s.DB == nil {
		return errors.New("contribution repository: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	DELETE FROM contributions WHERE contribution_id = $1
	`, id.String())
	if err != nil {
		return fmt.Errorf("reject contribution %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ports.ErrNotFound
	}
	return nil
}
