package resolution

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache stores lookup outcomes in Redis so resolution survives process
// restarts and is shared across gateway replicas. Expiry is delegated to
// Redis key TTLs, which matches the lazy-expiry contract: a stale key is
// simply gone on the next Get.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// negativeSentinel marks a cached "not found" outcome. A tenant payload is
// always a JSON object, so the sentinel cannot collide.
const negativeSentinel = "-"

// NewRedisCache creates a Redis-backed cache with the given TTL.
// Non-positive TTL falls back to DefaultCacheTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &redisCache{client: client, ttl: ttl, prefix: "resolution:"}
}

func (c *redisCache) Get(ctx context.Context, key string) (Entry, bool) {
	payload, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		// Misses and transient Redis failures are both treated as cache
		// misses; the provider lookup is the source of truth.
		return Entry{}, false
	}
	if payload == negativeSentinel {
		return Entry{}, true
	}

	var t Tenant
	if err := json.Unmarshal([]byte(payload), &t); err != nil {
		return Entry{}, false
	}
	return Entry{Tenant: &t}, true
}

func (c *redisCache) Set(ctx context.Context, key string, entry Entry) {
	payload := negativeSentinel
	if !entry.Negative() {
		raw, err := json.Marshal(entry.Tenant)
		if err != nil {
			return
		}
		payload = string(raw)
	}
	_ = c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context, key string) {
	_ = c.client.Del(ctx, c.prefix+key).Err()
}

func (c *redisCache) Close() error {
	if err := c.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
