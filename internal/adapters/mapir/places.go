package mapir

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/platform/obs"
	"travel-facilities-api/internal/ports"
)

const (
	placesPath = "places"

	// Hard limits imposed by the places API.
	maxPageSize     = 20
	maxBufferMeters = 15000
)

// One match as serialized by the places endpoints. Location coordinates are
// longitude-first; distance, when present, is a route distance in meters.
type placeItem struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Location struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"location"`
	Distance struct {
		Amount *float64 `json:"amount"`
	} `json:"distance"`
}

func (p placeItem) toRawPlace() (ports.RawPlace, bool) {
	if len(p.Location.Coordinates) != 2 {
		return ports.RawPlace{}, false
	}
	coord, err := domain.NewCoordinate(p.Location.Coordinates[1], p.Location.Coordinates[0])
	if err != nil {
		return ports.RawPlace{}, false
	}
	return ports.RawPlace{
		Name:           p.Name,
		Address:        p.Address,
		Coord:          coord,
		DistanceMeters: p.Distance.Amount,
	}, true
}

// request issues a GET against one places endpoint with the OData-style
// $filter grammar the service expects, retrying transient failures.
func (c *Client) request(ctx context.Context, endpoint, filter string, extra map[string]string) ([]byte, error) {
	if !c.Configured() {
		return nil, ports.ErrNotConfigured
	}

	url := c.baseURL + "/" + placesPath + "/" + endpoint

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("$filter", filter)
		for k, v := range extra {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("places %s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode places %s response: %w", endpoint, err)
	}
	return body, nil
}

func coordFilter(center domain.Coordinate, category string) string {
	return fmt.Sprintf("lat eq %v and lon eq %v and subcategory eq %s",
		center.Lat, center.Lon, category)
}

// Nearby lists matches of one category around center sorted by distance.
// limit is clamped to [1, 20] and radiusMeters to the service maximum.
func (c *Client) Nearby(
	ctx context.Context,
	center domain.Coordinate,
	category string,
	radiusMeters, offset, limit int,
) (_ []ports.RawPlace, err error) {
	defer obs.Time(ctx, "mapir.Nearby")(&err)

	limit = clamp(limit, 1, maxPageSize)
	radiusMeters = clamp(radiusMeters, 1, maxBufferMeters)
	if offset < 0 {
		offset = 0
	}

	filter := fmt.Sprintf("%s and buffer eq %d and sort eq true",
		coordFilter(center, category), radiusMeters)
	body, err := c.request(ctx, "list", filter, map[string]string{
		"$skip": strconv.Itoa(offset),
		"$top":  strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Value []placeItem `json:"value"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode places list: %w", err)
	}

	out := make([]ports.RawPlace, 0, len(decoded.Value))
	for _, item := range decoded.Value {
		if raw, ok := item.toRawPlace(); ok {
			out = append(out, raw)
		}
	}
	return out, nil
}

// Count returns the number of matches of one category within radiusMeters.
func (c *Client) Count(
	ctx context.Context,
	center domain.Coordinate,
	category string,
	radiusMeters int,
) (_ int, err error) {
	defer obs.Time(ctx, "mapir.Count")(&err)

	radiusMeters = clamp(radiusMeters, 1, maxBufferMeters)

	filter := fmt.Sprintf("%s and buffer eq %d", coordFilter(center, category), radiusMeters)
	body, err := c.request(ctx, "count", filter, nil)
	if err != nil {
		return 0, err
	}

	var decoded struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return 0, fmt.Errorf("decode places count: %w", err)
	}
	return decoded.Data.Count, nil
}

// NearestByAir returns the closest match by air distance, or nil when the
// service reports none.
func (c *Client) NearestByAir(ctx context.Context, center domain.Coordinate, category string) (*ports.RawPlace, error) {
	return c.nearest(ctx, "air-nearest", center, category)
}

// NearestByRoute returns the closest match by route distance, or nil when
// the service reports none. The reported distance.amount is meters.
func (c *Client) NearestByRoute(ctx context.Context, center domain.Coordinate, category string) (*ports.RawPlace, error) {
	return c.nearest(ctx, "route-nearest", center, category)
}

func (c *Client) nearest(ctx context.Context, endpoint string, center domain.Coordinate, category string) (_ *ports.RawPlace, err error) {
	defer obs.Time(ctx, "mapir."+endpoint)(&err)

	body, err := c.request(ctx, endpoint, coordFilter(center, category), nil)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Data *placeItem `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode places %s: %w", endpoint, err)
	}
	if decoded.Data == nil {
		return nil, nil
	}

	raw, ok := decoded.Data.toRawPlace()
	if !ok {
		return nil, nil
	}
	return &raw, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
