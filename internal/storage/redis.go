package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisGateway persists records in Redis under a halcyon namespace.
type RedisGateway struct {
	client *redis.Client
	prefix string
}

// NewRedisGateway creates a Redis-backed gateway from a redis URL.
func NewRedisGateway(ctx context.Context, url string) (*RedisGateway, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisGateway{client: client, prefix: "halcyon:"}, nil
}

func (g *RedisGateway) namespaceKey(key string) string {
	return g.prefix + key
}

// Get retrieves a value by key.
func (g *RedisGateway) Get(ctx context.Context, key string) (string, error) {
	value, err := g.client.Get(ctx, g.namespaceKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a value under key. Records have no TTL: they survive until
// explicitly removed.
func (g *RedisGateway) Set(ctx context.Context, key, value string) error {
	return g.client.Set(ctx, g.namespaceKey(key), value, 0).Err()
}

// Remove deletes a key. Removing a missing key is not an error.
func (g *RedisGateway) Remove(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.namespaceKey(key)).Err()
}

// Close closes the client.
func (g *RedisGateway) Close() error {
	return g.client.Close()
}

var _ Gateway = (*RedisGateway)(nil)
