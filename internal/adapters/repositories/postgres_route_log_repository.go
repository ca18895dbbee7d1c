package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"travel-facilities-api/internal/domain"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the RouteLogRepository port.
type PostgresRouteLogRepository struct{ DB *sql.DB }

func NewPostgresRouteLogRepository(db *sql.DB) *PostgresRouteLogRepository {
	return &PostgresRouteLogRepository{DB: db}
}

// Add appends one served route lookup to the log.
func (s *PostgresRouteLogRepository) Add(ctx context.Context, userID *uuid.UUID, sourceID, destinationID uuid.UUID, mode domain.TravelMode) error {
	if s.DB == nil {
		return errors.New("route log repository: db is nil")
	}

	var user any
	if userID != nil {
		user = userID.String()
	}

	q := `
	INSERT INTO route_logs (user_id, source_place_id, destination_place_id, travel_mode)
	VALUES ($1, $2, $3, $4)
	`
	_, err := s.DB.ExecContext(ctx, q, user, sourceID.String(), destinationID.String(), string(mode))
	if err != nil {
		return fmt.Errorf("add route log %s -> %s: %w", sourceID, destinationID, err)
	}
	return nil
}
