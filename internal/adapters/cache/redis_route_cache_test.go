package cache

import (
	"context"
	"testing"
	"time"

	"travel-facilities-api/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisRouteCache(rdb, time.Minute), mr
}

func TestRouteCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	leg := ports.RouteLeg{DistanceKm: 12.3, DurationSeconds: 900}
	if err := c.PutLeg(ctx, "driving|a|b", leg); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetLeg(ctx, "driving|a|b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a cache hit")
	}
	if *got != leg {
		t.Fatalf("got %+v, want %+v", *got, leg)
	}
}

func TestRouteCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.GetLeg(context.Background(), "driving|missing|pair")
	if err != nil {
		t.Fatalf("miss must not be an error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on miss, got %+v", *got)
	}
}

func TestRouteCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.PutLeg(ctx, "driving|a|b", ports.RouteLeg{DistanceKm: 1, DurationSeconds: 60}); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := c.GetLeg(ctx, "driving|a|b")
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if got != nil {
		t.Fatal("expected entry to expire")
	}
}
