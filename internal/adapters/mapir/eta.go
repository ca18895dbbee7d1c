package mapir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"travel-facilities-api/internal/domain"
	"travel-facilities-api/internal/platform/obs"
	"travel-facilities-api/internal/ports"
)

// Driving profile ETA endpoint. Coordinates go into the path as
// origin_longitude,origin_latitude;destination_longitude,destination_latitude.
const etaPath = "eta/route/v1/driving"

// No usable distance/duration pair could be extracted from the response.
var errNoRouteData = errors.New("route response carries no usable distance/duration")

// FetchRoute asks the ETA endpoint for a driving route between two points.
//
// The lookup is single-shot with the client's fixed timeout: no retries,
// route requests are latency sensitive. The response payload shape is not
// stable across the upstream service, so extraction tries a small ordered
// set of shapes (routes array, single route object, flattened fields) and
// normalizes units before returning.
func (c *Client) FetchRoute(ctx context.Context, origin, destination domain.Coordinate) (_ ports.RouteLeg, err error) {
	defer obs.Time(ctx, "mapir.FetchRoute")(&err)

	if !c.Configured() {
		return ports.RouteLeg{}, ports.ErrNotConfigured
	}

	key := routeCacheKey(origin, destination)
	if c.routeCache != nil {
		leg, err := c.routeCache.GetLeg(ctx, key)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if leg != nil {
			return *leg, nil
		}
	}

	url := fmt.Sprintf("%s/%s/%s;%s",
		c.baseURL, etaPath, pathCoords(origin), pathCoords(destination))

	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.RouteLeg{}, fmt.Errorf("eta request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return ports.RouteLeg{}, fmt.Errorf("eta request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.RouteLeg{}, fmt.Errorf("read eta response: %w", err)
	}

	leg, ok := extractLeg(body)
	if !ok {
		return ports.RouteLeg{}, errNoRouteData
	}

	if c.routeCache != nil {
		if err := c.routeCache.PutLeg(ctx, key, leg); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return leg, nil
}

func pathCoords(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func routeCacheKey(origin, destination domain.Coordinate) string {
	return "driving|" + origin.Key() + "|" + destination.Key()
}

type rawLeg struct {
	Distance *float64 `json:"distance"`
	Duration *float64 `json:"duration"`
}

func (l rawLeg) usable() bool { return l.Distance != nil && l.Duration != nil }

func (l rawLeg) normalize() ports.RouteLeg {
	return ports.RouteLeg{
		DistanceKm:      normalizeDistanceKm(*l.Distance),
		DurationSeconds: normalizeDurationSeconds(*l.Duration),
	}
}

// extractLeg tries the known response shapes in order and returns the first
// usable distance/duration pair, normalized. The upstream contract is
// unstable, so absence of a shape is not an error in itself.
func extractLeg(body []byte) (ports.RouteLeg, bool) {
	// Shape 1: {"routes": [ {distance, duration}, ... ]}
	var asArray struct {
		Routes []rawLeg `json:"routes"`
	}
	if err := json.Unmarshal(body, &asArray); err == nil && len(asArray.Routes) > 0 {
		if leg := asArray.Routes[0]; leg.usable() {
			return leg.normalize(), true
		}
	}

	// Shape 2: {"route": {distance, duration}} or {"routes": {...}} as a
	// bare object.
	var asObject struct {
		Route  rawLeg `json:"route"`
		Routes rawLeg `json:"routes"`
	}
	if err := json.Unmarshal(body, &asObject); err == nil {
		if asObject.Route.usable() {
			return asObject.Route.normalize(), true
		}
		if asObject.Routes.usable() {
			return asObject.Routes.normalize(), true
		}
	}

	// Shape 3: {"distance": ..., "duration": ...} flattened at the top level.
	var flat rawLeg
	if err := json.Unmarshal(body, &flat); err == nil && flat.usable() {
		return flat.normalize(), true
	}

	return ports.RouteLeg{}, false
}

// normalizeDistanceKm converts a raw distance magnitude to kilometers.
// Values above 1000 are assumed to be meters.
func normalizeDistanceKm(v float64) float64 {
	if v > 1000 {
		return domain.RoundKm(v / 1000)
	}
	return domain.RoundKm(v)
}

// normalizeDurationSeconds converts a raw duration magnitude to whole
// seconds. Values below 100 are assumed to be minutes, values above 10000
// milliseconds.
func normalizeDurationSeconds(v float64) int {
	if v < 100 {
		return int(math.Round(v * 60))
	}
	if v > 10000 {
		return int(math.Round(v / 1000))
	}
	return int(math.Round(v))
}
