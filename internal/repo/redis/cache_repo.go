package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent; callers fall through to the
// database and repopulate.
var ErrCacheMiss = errors.New("cache miss")

// CacheRepo is a keyed list cache: each query key maps to the last-fetched
// JSON value and gets invalidated on any mutation of the resource behind it.
type CacheRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCacheRepo(client *goredis.Client, ttl time.Duration) *CacheRepo {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CacheRepo{client: client, ttl: ttl}
}

func (r *CacheRepo) GetJSON(ctx context.Context, key string, target any) error {
	if r.client == nil {
		return ErrCacheMiss
	}
	if key == "" {
		return fmt.Errorf("cache key is required")
	}

	raw, err := r.client.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("get cache key %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode cached value for %q: %w", key, err)
	}

	return nil
}

func (r *CacheRepo) SetJSON(ctx context.Context, key string, value any) error {
	if r.client == nil {
		return nil
	}
	if key == "" {
		return fmt.Errorf("cache key is required")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for cache key %q: %w", key, err)
	}

	if err := r.client.Set(ctx, cacheKey(key), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set cache key %q: %w", key, err)
	}

	return nil
}

func (r *CacheRepo) Invalidate(ctx context.Context, keys ...string) error {
	if r.client == nil || len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			full = append(full, cacheKey(key))
		}
	}
	if len(full) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("invalidate cache keys: %w", err)
	}

	return nil
}

func cacheKey(key string) string {
	return "cache:" + key
}
