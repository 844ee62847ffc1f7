// Package cachetest provides an in-memory cache.Cache for tests.
package cachetest

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"hirehub/pkg/cache"
)

type Memory struct {
	mu    sync.Mutex
	items map[string][]byte

	// Err, when set, is returned by every operation.
	Err error
}

func New() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

var _ cache.Cache = (*Memory)(nil)

func (m *Memory) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if m.Err != nil {
		return m.Err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data
	return nil
}

func (m *Memory) Get(_ context.Context, key string, dest interface{}) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	data, ok := m.items[key]
	m.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	return m.DeleteMultiple(ctx, []string{key})
}

func (m *Memory) SetMultiple(ctx context.Context, items map[string]interface{}, expiration time.Duration) error {
	for key, value := range items {
		if err := m.Set(ctx, key, value, expiration); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) DeleteMultiple(_ context.Context, keys []string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.items, key)
	}
	return nil
}

func (m *Memory) InvalidatePrefix(_ context.Context, prefix string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return m.Err
}

// Has reports whether key is currently cached.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}
