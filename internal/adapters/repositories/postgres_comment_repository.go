package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"travel-facilities-api/internal/domain"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the CommentRepository and
// ImageRepository ports.
type PostgresCommentRepository struct{ DB *sql.DB }

func NewPostgresCommentRepository(db *sql.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{DB: db}
}

// AddRating stores a 1..5 rating as a comment row for the target.
func (s *PostgresCommentRepository) AddRating(ctx context.Context, target domain.TargetType, targetID uuid.UUID, rating int) error {
	if s.DB == nil {
		return errors.New("comment repository: db is nil")
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("add rating: rating %d out of range 1..5", rating)
	}

	q := `
	INSERT INTO comments (comment_id, target_type, target_id, rating)
	VALUES ($1, $2, $3, $4)
	`
	_, err := s.DB.ExecContext(ctx, q, uuid.New().String(), string(target), targetID.String(), rating)
	if err != nil {
		return fmt.Errorf("add rating for %s %s: %w", target, targetID, err)
	}
	return nil
}

// ListByTarget returns the latest comments for the target, newest first.
func (s *PostgresCommentRepository) ListByTarget(ctx context.Context, target domain.TargetType, targetID uuid.UUID, limit int) ([]domain.Comment, error) {
	if s.DB == nil {
		return nil, errors.New("comment repository: db is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	q := `
	SELECT comment_id, target_type, target_id, rating, created_at
	FROM comments
	WHERE target_type = $1 AND target_id = $2
	ORDER BY created_at DESC
	LIMIT $3
	`
	rows, err := s.DB.QueryContext(ctx, q, string(target), targetID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("list comments for %s %s: %w", target, targetID, err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var (
			c            domain.Comment
			cID, tID     string
			rating       sql.NullInt64
		)
		if err := rows.Scan(&cID, &c.TargetType, &tID, &rating, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if c.CommentID, err = uuid.Parse(cID); err != nil {
			return nil, fmt.Errorf("parse comment id %q: %w", cID, err)
		}
		if c.TargetID, err = uuid.Parse(tID); err != nil {
			return nil, fmt.Errorf("parse comment target id %q: %w", tID, err)
		}
		if rating.Valid {
			v := int(rating.Int64)
			c.Rating = &v
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("comment row iteration: %w", err)
	}
	return comments, nil
}

// ListURLs returns image URLs attached to the target.
func (s *PostgresCommentRepository) ListURLs(ctx context.Context, target domain.TargetType, targetID uuid.UUID) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("comment repository: db is nil")
	}

	q := `
	SELECT image_url
	FROM images
	WHERE target_type = $1 AND target_id = $2
	ORDER BY image_id
	`
	rows, err := s.DB.QueryContext(ctx, q, string(target), targetID.String())
	if err != nil {
		return nil, fmt.Errorf("list images for %s %s: %w", target, targetID, err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan image url: %w", err)
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("image row iteration: %w", err)
	}
	return urls, nil
}
