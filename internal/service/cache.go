package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache stores serialized content lists. A nil ListCache disables caching.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisListCache is a ListCache backed by plain Redis string keys.
type RedisListCache struct {
	rdb *redis.Client
}

// NewRedisListCache returns nil when rdb is nil so callers can pass the
// result straight into services.
func NewRedisListCache(rdb *redis.Client) ListCache {
	if rdb == nil {
		return nil
	}
	return &RedisListCache{rdb: rdb}
}

func (c *RedisListCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisListCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *RedisListCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
