package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shorturl/internal/shortener"
)

const defaultCachePrefix = "url:"

// RedisCache is a Redis implementation of shortener.Cache. Entries are plain
// string keys without expiry.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache creates a new Redis-backed cache. The client is owned by the caller.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: defaultCachePrefix,
	}
}

// Set overwrites the cached target for hash.
func (r *RedisCache) Set(ctx context.Context, hash shortener.Hash, target string) error {
	return r.client.Set(ctx, r.key(hash), target, 0).Err()
}

// Get returns the cached target, or shortener.ErrNotFound on a miss.
func (r *RedisCache) Get(ctx context.Context, hash shortener.Hash) (string, error) {
	target, err := r.client.Get(ctx, r.key(hash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrNotFound
		}

		return "", err
	}

	return target, nil
}

func (r *RedisCache) key(hash shortener.Hash) string {
	return r.prefix + string(hash)
}

// Compile-time check.
var _ shortener.Cache = (*RedisCache)(nil)
