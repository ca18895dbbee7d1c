package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"travel-facilities-api/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Redis-backed cache for normalized external route lookups.
//
// Keys are expected to be consistent (already rounded coordinates) by the
// caller. A cache miss is not an error: GetLeg returns (nil, nil) so the
// provider can fall through to the live lookup.
type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

const defaultTTL = 15 * time.Minute

func NewRedisRouteCache(rdb *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisRouteCache{rdb: rdb, ttl: ttl}
}

func cacheKey(key string) string { return "route:" + key }

// GetLeg fetches a cached route leg, or nil on a miss.
func (c *RedisRouteCache) GetLeg(ctx context.Context, key string) (*ports.RouteLeg, error) {
	if c.rdb == nil {
		return nil, errors.New("route cache: redis client is nil")
	}

	raw, err := c.rdb.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache %q: %w", key, err)
	}

	var leg ports.RouteLeg
	if err := json.Unmarshal(raw, &leg); err != nil {
		return nil, fmt.Errorf("decode cached route %q: %w", key, err)
	}
	return &leg, nil
}

// PutLeg stores a route leg under key with the cache TTL.
func (c *RedisRouteCache) PutLeg(ctx context.Context, key string, leg ports.RouteLeg) error {
	if c.rdb == nil {
		return errors.New("route cache: redis client is nil")
	}

	raw, err := json.Marshal(leg)
	if err != nil {
		return fmt.Errorf("encode route leg %q: %w", key, err)
	}

	if err := c.rdb.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache %q: %w", key, err)
	}
	return nil
}
