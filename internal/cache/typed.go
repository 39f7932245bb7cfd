// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Keys of the cached API sections.
const (
	KeyHero     = "section:hero"
	KeyAbout    = "section:about"
	KeySkills   = "section:skills"
	KeyProjects = "section:projects"
	KeyContact  = "section:contact"
)

// TypedCache provides type-safe caching operations using generics.
// It wraps a Cacher and stores values as JSON.
//
// Each key carries a generation that Delete bumps. GetOrLoad stores a
// loaded value only if no Delete happened while it was loading, so a
// read racing a write cannot put the pre-write value back. Generations
// are per process.
type TypedCache[T any] struct {
	cache      Cacher
	defaultTTL time.Duration

	mu   sync.Mutex
	gens map[string]uint64
}

// NewTypedCache creates a new TypedCache wrapping the given cache implementation.
func NewTypedCache[T any](cache Cacher, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{
		cache:      cache,
		defaultTTL: defaultTTL,
		gens:       make(map[string]uint64),
	}
}

// Get returns the cached value and true, or the zero value and false on a
// miss or an undecodable entry.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false
	}
	return value, true
}

// Set stores a value in the cache with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}
	return c.cache.Set(ctx, key, data, c.defaultTTL)
}

// Delete removes a key from the cache and invalidates loads in flight.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	return c.cache.Delete(ctx, key)
}

func (c *TypedCache[T]) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

// setIfCurrent stores value unless key was deleted since gen was read.
func (c *TypedCache[T]) setIfCurrent(ctx context.Context, key string, gen uint64, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return nil
	}
	return c.Set(ctx, key, value)
}

// GetOrLoad returns the cached value, or calls load and caches its result.
// A failure to store the loaded value is not an error.
func (c *TypedCache[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	gen := c.generation(key)
	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	_ = c.setIfCurrent(ctx, key, gen, value)
	return value, nil
}
