package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/ports"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the PlaceRepository port.
type PostgresPlaceRepository struct{ DB *sql.DB }

func NewPostgresPlaceRepository(db *sql.DB) *PostgresPlaceRepository {
	return &PostgresPlaceRepository{DB: db}
}

// Rating-average subquery shared by the listing and detail paths.
const avgRatingJoin = `
	LEFT JOIN (
		SELECT target_id, AVG(rating)::float8 AS avg_rating
		FROM comments
		WHERE target_type = 'place' AND rating IS NOT NULL
		GROUP BY target_id
	) r ON r.target_id = p.place_id
`

// ListPlaces returns places matching filter ordered by average rating,
// highest first. Price levels map hotel stars and restaurant prices onto
// budget/mid/high bands; other categories always pass the price filter.
func (s *PostgresPlaceRepository) ListPlaces(ctx context.Context, filter ports.PlaceFilter) ([]*domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("place repository: db is nil")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Type != "" {
		where = append(where, "p.type = "+arg(string(filter.Type)))
	}
	if filter.City != "" {
		where = append(where, "p.city ILIKE "+arg("%"+filter.City+"%"))
	}
	if filter.MinRating > 0 {
		where = append(where, "COALESCE(r.avg_rating, 0) >= "+arg(filter.MinRating))
	}

	switch filter.PriceLevel {
	case 1:
		where = append(where, `(
			(p.type = 'hotel' AND hd.stars <= 2)
			OR (p.type = 'food' AND rd.avg_price <= 200000)
			OR p.type IN ('museum', 'entertainment', 'hospital'))`)
	case 2:
		where = append(where, `(
			(p.type = 'hotel' AND hd.stars = 3)
			OR (p.type = 'food' AND rd.avg_price > 200000 AND rd.avg_price <= 500000)
			OR p.type IN ('museum', 'entertainment', 'hospital'))`)
	case 3:
		where = append(where, `(
			(p.type = 'hotel' AND hd.stars >= 4)
			OR (p.type = 'food' AND rd.avg_price > 500000)
			OR p.type IN ('museum', 'entertainment', 'hospital'))`)
	}

	q := `
	SELECT p.place_id, p.type, p.city, p.address, p.latitude, p.longitude, r.avg_rating
	FROM places p
	LEFT JOIN hotel_details hd ON hd.place_id = p.place_id
	LEFT JOIN restaurant_details rd ON rd.place_id = p.place_id
	` + avgRatingJoin
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY COALESCE(r.avg_rating, 0) DESC, p.place_id LIMIT " + arg(limit)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list places: query: %w", err)
	}
	defer rows.Close()

	places, err := scanPlaces(rows)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	if err := s.attachTranslations(ctx, places); err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	if err := s.attachAmenities(ctx, places); err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	return places, nil
}

// GetPlace returns one place with translations, amenities, per-type details
// and average rating.
func (s *PostgresPlaceRepository) GetPlace(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("place repository: db is nil")
	}

	q := `
	SELECT p.place_id, p.type, p.city, p.address, p.latitude, p.longitude, r.avg_rating,
		hd.stars, hd.price_range,
		rd.cuisine, rd.avg_price,
		md.open_at, md.close_at, md.ticket_price
	FROM places p
	LEFT JOIN hotel_details hd ON hd.place_id = p.place_id
	LEFT JOIN restaurant_details rd ON rd.place_id = p.place_id
	LEFT JOIN museum_details md ON md.place_id = p.place_id
	` + avgRatingJoin + `
	WHERE p.place_id = $1
	`

	var (
		p          domain.Place
		idStr      string
		avgRating  sql.NullFloat64
		stars      sql.NullInt64
		priceRange sql.NullString
		cuisine    sql.NullString
		avgPrice   sql.NullInt64
		openAt     sql.NullString
		closeAt    sql.NullString
		ticket     sql.NullInt64
	)
	err := s.DB.QueryRowContext(ctx, q, id.String()).Scan(
		&idStr, &p.Type, &p.City, &p.Address, &p.Coord.Lat, &p.Coord.Lon, &avgRating,
		&stars, &priceRange, &cuisine, &avgPrice, &openAt, &closeAt, &ticket,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get place %s: %w", id, err)
	}

	p.PlaceID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("get place: parse id %q: %w", idStr, err)
	}
	if avgRating.Valid {
		v := avgRating.Float64
		p.AvgRating = &v
	}

	switch p.Type {
	case domain.PlaceHotel:
		p.Hotel = &domain.HotelDetails{PriceRange: priceRange.String}
		if stars.Valid {
			v := int(stars.Int64)
			p.Hotel.Stars = &v
		}
	case domain.PlaceFood:
		p.Restaurant = &domain.RestaurantDetails{Cuisine: cuisine.String}
		if avgPrice.Valid {
			v := int(avgPrice.Int64)
			p.Restaurant.AvgPrice = &v
		}
	case domain.PlaceMuseum:
		p.Museum = &domain.MuseumDetails{OpenAt: openAt.String, CloseAt: closeAt.String}
		if ticket.Valid {
			v := int(ticket.Int64)
			p.Museum.TicketPrice = &v
		}
	}

	places := []*domain.Place{&p}
	if err := s.attachTranslations(ctx, places); err != nil {
		return nil, fmt.Errorf("get place: %w", err)
	}
	if err := s.attachAmenities(ctx, places); err != nil {
		return nil, fmt.Errorf("get place: %w", err)
	}
	return &p, nil
}

// ListByType returns up to limit places of one category with translations.
func (s *PostgresPlaceRepository) ListByType(ctx context.Context, t domain.PlaceType, limit int) ([]*domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("place repository: db is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	q := `
	SELECT p.place_id, p.type, p.city, p.address, p.latitude, p.longitude, NULL::float8
	FROM places p
	WHERE p.type = $1
	ORDER BY p.place_id
	LIMIT $2
	`
	rows, err := s.DB.QueryContext(ctx, q, string(t), limit)
	if err != nil {
		return nil, fmt.Errorf("list places by type %q: query: %w", t, err)
	}
	defer rows.Close()

	places, err := scanPlaces(rows)
	if err != nil {
		return nil, fmt.Errorf("list places by type %q: %w", t, err)
	}
	if err := s.attachTranslations(ctx, places); err != nil {
		return nil, fmt.Errorf("list places by type %q: %w", t, err)
	}
	return places, nil
}

func scanPlaces(rows *sql.Rows) ([]*domain.Place, error) {
	var places []*domain.Place
	for rows.Next() {
		var (
			p         domain.Place
			idStr     string
			avgRating sql.NullFloat64
		)
		if err := rows.Scan(&idStr, &p.Type, &p.City, &p.Address, &p.Coord.Lat, &p.Coord.Lon, &avgRating); err != nil {
			return nil, fmt.Errorf("scan place row: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse place id %q: %w", idStr, err)
		}
		p.PlaceID = id
		if avgRating.Valid {
			v := avgRating.Float64
			p.AvgRating = &v
		}
		places = append(places, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("place row iteration: %w", err)
	}
	return places, nil
}

func (s *PostgresPlaceRepository) attachTranslations(ctx context.Context, places []*domain.Place) error {
	ids, byID := placeIndex(places)
	if len(ids) == 0 {
		return nil
	}

	q := `
	SELECT place_id, lang, name, description
	FROM place_translations
	WHERE place_id = ANY($1::uuid[])
	ORDER BY lang
	`
	rows, err := s.DB.QueryContext(ctx, q, ids)
	if err != nil {
		return fmt.Errorf("query place translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			idStr string
			t     domain.Translation
		)
		if err := rows.Scan(&idStr, &t.Lang, &t.Name, &t.Description); err != nil {
			return fmt.Errorf("scan place translation: %w", err)
		}
		if p, ok := byID[idStr]; ok {
			p.Translations = append(p.Translations, t)
		}
	}
	return rows.Err()
}

func (s *PostgresPlaceRepository) attachAmenities(ctx context.Context, places []*domain.Place) error {
	ids, byID := placeIndex(places)
	if len(ids) == 0 {
		return nil
	}

	q := `
	SELECT place_id, amenity_name
	FROM place_amenities
	WHERE place_id = ANY($1::uuid[])
	ORDER BY amenity_name
	`
	rows, err := s.DB.QueryContext(ctx, q, ids)
	if err != nil {
		return fmt.Errorf("query place amenities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var idStr, amenity string
		if err := rows.Scan(&idStr, &amenity); err != nil {
			return fmt.Errorf("scan place amenity: %w", err)
		}
		if p, ok := byID[idStr]; ok {
			p.Amenities = append(p.Amenities, amenity)
		}
	}
	return rows.Err()
}

func placeIndex(places []*domain.Place) ([]string, map[string]*domain.Place) {
	ids := make([]string, 0, len(places))
	byID := make(map[string]*domain.Place, len(places))
	for _, p := range places {
		id := p.PlaceID.String()
		ids = append(ids, id)
		byID[id] = p
	}
	return ids, byID
}
