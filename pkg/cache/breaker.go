package cache

import (
	"context"
	"errors"
	"time"

	"hirehub/pkg/circuitbreaker"
	"hirehub/pkg/logger"
)

// GuardedCache puts a circuit breaker in front of another Cache. While
// redis is down every call fails fast with circuitbreaker.ErrOpen and the
// read-through strategy serves straight from the database.
type GuardedCache struct {
	inner   Cache
	breaker *circuitbreaker.CircuitBreaker
}

func NewGuardedCache(inner Cache, logger logger.Logger) Cache {
	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name:        "redis",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrCacheMiss)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("Cache devre kesici durumu değişti", map[string]interface{}{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	})

	return &GuardedCache{inner: inner, breaker: breaker}
}

func (g *GuardedCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return g.breaker.Execute(func() error { return g.inner.Set(ctx, key, value, expiration) })
}

func (g *GuardedCache) Get(ctx context.Context, key string, dest interface{}) error {
	return g.breaker.Execute(func() error { return g.inner.Get(ctx, key, dest) })
}

func (g *GuardedCache) Delete(ctx context.Context, key string) error {
	return g.breaker.Execute(func() error { return g.inner.Delete(ctx, key) })
}

func (g *GuardedCache) SetMultiple(ctx context.Context, items map[string]interface{}, expiration time.Duration) error {
	return g.breaker.Execute(func() error { return g.inner.SetMultiple(ctx, items, expiration) })
}

func (g *GuardedCache) DeleteMultiple(ctx context.Context, keys []string) error {
	return g.breaker.Execute(func() error { return g.inner.DeleteMultiple(ctx, keys) })
}

func (g *GuardedCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	return g.breaker.Execute(func() error { return g.inner.InvalidatePrefix(ctx, prefix) })
}

// Ping bypasses the breaker so health checks report the real redis state.
func (g *GuardedCache) Ping(ctx context.Context) error {
	return g.inner.Ping(ctx)
}
