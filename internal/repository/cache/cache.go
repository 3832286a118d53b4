// Package cache holds the Redis-backed stores: the read-through cache of
// product listings and the sales carts.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/pkg/logger"
)

const keyPrefix = "cache:"

// Cache stores JSON values in Redis under namespaced keys
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new cache
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetJSON loads key into dest. It reports false on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		// A value that no longer decodes is treated as a miss.
		_ = c.client.Del(ctx, keyPrefix+key).Err()
		return false, nil
	}
	return true, nil
}

// SetJSON stores value under key for the cache TTL
func (c *Cache) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}

// Invalidate removes every key of a namespace ("products" removes
// "products:list", "products:search:...", ...)
func (c *Cache) Invalidate(ctx context.Context, namespace string) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+namespace+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %s: %w", namespace, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", namespace, err)
	}
	logger.Debug("cache invalidated", zap.String("namespace", namespace), zap.Int("keys", len(keys)))
	return nil
}

// Store is the part of Cache that Remember needs
type Store interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

// Remember returns the cached value of key or loads, stores and returns it.
// Cache failures fall back to load.
func Remember[T any](ctx context.Context, c Store, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if c == nil {
		return load(ctx)
	}

	hit, err := c.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if err := c.SetJSON(ctx, key, value); err != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}
