package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hirehub/pkg/logger"
	"hirehub/pkg/metrics"
)

// Cache key constants
const (
	JobPrefix      = "job"
	JobByIDKey     = "job:id:%d"
	JobListKey     = "job:list"
	JobsByOwnerKey = "job:owner:%d"
)

// Cache expiration times
const (
	ShortExpiration  = 5 * time.Minute
	MediumExpiration = 30 * time.Minute
	LongExpiration   = 2 * time.Hour
)

// CacheStrategy defines the caching patterns used by the cached services.
type CacheStrategy interface {
	// Read-through: Check cache first, if miss then fetch from source and cache it
	ReadThrough(ctx context.Context, key string, dest interface{}, fetchFunc func() (interface{}, error), expiration time.Duration) error

	// Write-through: Write to source, then refresh the cached copy. An error
	// wrapping ErrStale means the source write succeeded but the cached copy
	// could not be refreshed or dropped.
	WriteThrough(ctx context.Context, key string, value interface{}, writeFunc func(value interface{}) error, expiration time.Duration) error
}

type CacheManager struct {
	cache  Cache
	logger logger.Logger
}

func NewCacheManager(cache Cache, logger logger.Logger) CacheStrategy {
	return &CacheManager{
		cache:  cache,
		logger: logger,
	}
}

func (cm *CacheManager) ReadThrough(ctx context.Context, key string, dest interface{}, fetchFunc func() (interface{}, error), expiration time.Duration) error {
	err := cm.cache.Get(ctx, key, dest)
	if err == nil {
		metrics.RecordCacheHit()
		return nil
	}
	metrics.RecordCacheMiss()

	if !errors.Is(err, ErrCacheMiss) {
		// Serve from the source even when redis is unavailable.
		cm.logger.WarnContext(ctx, "Read-through sırasında cache hatası", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	data, err := fetchFunc()
	if err != nil {
		return err
	}

	if err := cm.cache.Set(ctx, key, data, expiration); err != nil {
		cm.logger.WarnContext(ctx, "Read-through sonucu cache'e yazılamadı", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	return copyData(data, dest)
}

func (cm *CacheManager) WriteThrough(ctx context.Context, key string, value interface{}, writeFunc func(value interface{}) error, expiration time.Duration) error {
	if err := writeFunc(value); err != nil {
		return err
	}

	if err := cm.cache.Set(ctx, key, value, expiration); err != nil {
		cm.logger.WarnContext(ctx, "Write-through sonucu cache'e yazılamadı", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		if delErr := cm.cache.Delete(ctx, key); delErr != nil {
			return fmt.Errorf("%s: %w", key, ErrStale)
		}
	}

	return nil
}

func JobCacheKey(jobID int64) string {
	return fmt.Sprintf(JobByIDKey, jobID)
}

func JobOwnerCacheKey(ownerID int64) string {
	return fmt.Sprintf(JobsByOwnerKey, ownerID)
}

// JobCacheKeys lists the key of a job together with every listing it
// appears in.
func JobCacheKeys(jobID, ownerID int64) []string {
	return []string{
		JobCacheKey(jobID),
		JobOwnerCacheKey(ownerID),
		JobListKey,
	}
}

func copyData(src, dest interface{}) error {
	switch d := dest.(type) {
	case *interface{}:
		*d = src
		return nil
	default:
		data, err := json.Marshal(src)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, dest)
	}
}
