// Package cache provides a short-TTL read-through cache for orderbook depth
// snapshots. The matching core (internal/core) remains the sole source of
// truth for depth; a cache hit only saves recomputing GetDepth under
// repeated polling, and a cache miss or error always falls back to it.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// DepthCache caches one serialized depth response per market id and
// outcome key for a short TTL. GetOrderbookHandler passes the outcome
// joined with the requested level count as that key.
type DepthCache interface {
	Get(ctx context.Context, marketID, outcome string) (json.RawMessage, bool)
	Set(ctx context.Context, marketID, outcome string, payload interface{}, ttl time.Duration)
	Close() error
}

// RedisDepthCache stores depth snapshots in Redis with a per-entry TTL, the
// same SET-with-expiry shape gogogo1024-cex-hertz's cacheOrderBookSnapshot
// uses for its own orderbook cache key.
type RedisDepthCache struct {
	rdb *redis.Client
}

// NewRedisDepthCache builds a RedisDepthCache against addr.
func NewRedisDepthCache(addr, password string, db int) *RedisDepthCache {
	return &RedisDepthCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func cacheKey(marketID, outcome string) string {
	return "orderbook:" + marketID + ":" + outcome
}

func (c *RedisDepthCache) Get(ctx context.Context, marketID, outcome string) (json.RawMessage, bool) {
	val, err := c.rdb.Get(ctx, cacheKey(marketID, outcome)).Bytes()
	if err != nil {
		return nil, false
	}
	return json.RawMessage(val), true
}

func (c *RedisDepthCache) Set(ctx context.Context, marketID, outcome string, payload interface{}, ttl time.Duration) {
	val, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, cacheKey(marketID, outcome), val, ttl)
}

func (c *RedisDepthCache) Close() error {
	return c.rdb.Close()
}

// Noop never caches a depth snapshot. It is the default when no cache
// backend is configured, keeping GetOrderbook correct (just uncached).
type Noop struct{}

func (Noop) Get(context.Context, string, string) (json.RawMessage, bool) { return nil, false }

func (Noop) Set(context.Context, string, string, interface{}, time.Duration) {}

func (Noop) Close() error { return nil }
