package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*CachedBlobStore)(nil)

// CachedBlobStore reads through Redis in front of a durable store. Writes
// go to the durable store first and then drop the cached copy.
type CachedBlobStore struct {
	next   Store
	cache  *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedBlobStore(next Store, cache *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *CachedBlobStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedBlobStore{
		next:   next,
		cache:  cache,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedBlobStore) cacheKey(key string) string {
	return r.prefix + "cache:" + key
}

func (r *CachedBlobStore) invalidate(ctx context.Context, key string) {
	if err := r.cache.Del(ctx, r.cacheKey(key)).Err(); err != nil {
		r.logger.Warn("cache invalidate failed", "key", key, "error", err)
	}
}

func (r *CachedBlobStore) Get(ctx context.Context, key string) (string, error) {
	ck := r.cacheKey(key)

	val, err := r.cache.Get(ctx, ck).Result()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.logger.Warn("cache read failed", "key", key, "error", err)
	}

	val, err = r.next.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if setErr := r.cache.Set(ctx, ck, val, r.ttl).Err(); setErr != nil {
		r.logger.Warn("cache fill failed", "key", key, "error", setErr)
	}
	return val, nil
}

func (r *CachedBlobStore) Set(ctx context.Context, key, value string) error {
	if err := r.next.Set(ctx, key, value); err != nil {
		return err
	}
	r.invalidate(ctx, key)
	return nil
}

func (r *CachedBlobStore) Ping(ctx context.Context) error {
	if err := r.next.Ping(ctx); err != nil {
		return err
	}
	return r.cache.Ping(ctx).Err()
}
