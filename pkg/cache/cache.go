package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hirehub/pkg/logger"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	// ErrStale reports a cached entry that may no longer match its source.
	ErrStale = errors.New("cache entry may be stale")
)

// Cache interface - caching operations
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error

	SetMultiple(ctx context.Context, items map[string]interface{}, expiration time.Duration) error
	DeleteMultiple(ctx context.Context, keys []string) error
	InvalidatePrefix(ctx context.Context, prefix string) error

	Ping(ctx context.Context) error
}

// RedisCache implements Cache interface
type RedisCache struct {
	client *redis.Client
	logger logger.Logger
	prefix string
}

func NewRedisCache(client *redis.Client, logger logger.Logger, prefix string) Cache {
	return &RedisCache{
		client: client,
		logger: logger,
		prefix: prefix,
	}
}

func (r *RedisCache) makeKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Cache set marshal hatası", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return err
	}

	fullKey := r.makeKey(key)
	if err := r.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		r.logger.Error("Cache set hatası", map[string]interface{}{
			"key":   fullKey,
			"error": err.Error(),
		})
		return err
	}

	r.logger.Debug("Cache set başarılı", map[string]interface{}{
		"key":        fullKey,
		"expiration": expiration,
	})
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	fullKey := r.makeKey(key)
	data, err := r.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Cache miss", map[string]interface{}{"key": fullKey})
			return ErrCacheMiss
		}
		r.logger.Error("Cache get hatası", map[string]interface{}{
			"key":   fullKey,
			"error": err.Error(),
		})
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		r.logger.Error("Cache get unmarshal hatası", map[string]interface{}{
			"key":   fullKey,
			"error": err.Error(),
		})
		return err
	}

	r.logger.Debug("Cache hit", map[string]interface{}{"key": fullKey})
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.DeleteMultiple(ctx, []string{key})
}

// SetMultiple writes all items in a single pipeline.
func (r *RedisCache) SetMultiple(ctx context.Context, items map[string]interface{}, expiration time.Duration) error {
	if len(items) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for key, value := range items {
		data, err := json.Marshal(value)
		if err != nil {
			r.logger.Error("Cache set multiple marshal hatası", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
			return err
		}
		pipe.Set(ctx, r.makeKey(key), data, expiration)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Cache set multiple hatası", map[string]interface{}{
			"count": len(items),
			"error": err.Error(),
		})
		return err
	}

	r.logger.Debug("Cache set multiple başarılı", map[string]interface{}{
		"count":      len(items),
		"expiration": expiration,
	})
	return nil
}

func (r *RedisCache) DeleteMultiple(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = r.makeKey(key)
	}

	if err := r.client.Del(ctx, fullKeys...).Err(); err != nil {
		r.logger.Error("Cache delete hatası", map[string]interface{}{
			"keys":  len(keys),
			"error": err.Error(),
		})
		return err
	}

	r.logger.Debug("Cache delete başarılı", map[string]interface{}{"count": len(keys)})
	return nil
}

// InvalidatePrefix deletes every key under prefix using SCAN so large
// keyspaces do not block the server.
func (r *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	pattern := r.makeKey(prefix + "*")

	var keys []string
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Cache delete pattern hatası", map[string]interface{}{
			"pattern": pattern,
			"error":   err.Error(),
		})
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Cache delete pattern hatası", map[string]interface{}{
			"pattern": pattern,
			"keys":    len(keys),
			"error":   err.Error(),
		})
		return err
	}

	r.logger.Info("Cache delete pattern başarılı", map[string]interface{}{
		"pattern":      pattern,
		"deleted_keys": len(keys),
	})
	return nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
