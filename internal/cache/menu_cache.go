package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyMenuShort = "menu:drinks:short"
	keyMenuLong  = "menu:drinks:long"
)

// MenuCache stores rendered menu listings. Only catalog data lives here;
// decoded token claims are never cached.
type MenuCache interface {
	GetShort(ctx context.Context) ([]byte, bool)
	SetShort(ctx context.Context, payload []byte)
	GetLong(ctx context.Context) ([]byte, bool)
	SetLong(ctx context.Context, payload []byte)
	Invalidate(ctx context.Context) error
}

type redisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewMenuCache builds a redis-backed menu cache. Cache misses and redis
// outages are equivalent: callers fall back to the repository.
func NewMenuCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) MenuCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &redisMenuCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisMenuCache) GetShort(ctx context.Context) ([]byte, bool) {
	return c.get(ctx, keyMenuShort)
}

func (c *redisMenuCache) SetShort(ctx context.Context, payload []byte) {
	c.set(ctx, keyMenuShort, payload)
}

func (c *redisMenuCache) GetLong(ctx context.Context) ([]byte, bool) {
	return c.get(ctx, keyMenuLong)
}

func (c *redisMenuCache) SetLong(ctx context.Context, payload []byte) {
	c.set(ctx, keyMenuLong, payload)
}

func (c *redisMenuCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, keyMenuShort, keyMenuLong).Err()
}

func (c *redisMenuCache) get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("menu cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

func (c *redisMenuCache) set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("menu cache write failed", zap.String("key", key), zap.Error(err))
	}
}
