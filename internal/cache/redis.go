package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rgehrsitz/readiness/internal/domain"
)

// RedisCache shares projection results between server replicas
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects lazily to the Redis server at addr. A zero ttl keeps
// entries until evicted by Redis.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

// NewRedisCacheWithClient wraps an existing client
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*domain.ProjectionResult, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	result, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, result *domain.ProjectionResult) error {
	data, err := encode(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// Ping checks connectivity
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client's connections
func (r *RedisCache) Close() error {
	return r.client.Close()
}
