// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestMemoryCache_Basic(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(missing) err = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Delete err = %v", err)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 2 || stats.Sets != 1 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "short", []byte("x"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired entry still returned, err = %v", err)
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'z'

	got, _ := c.Get(ctx, "k")
	got[1] = 'z'

	again, _ := c.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("cached value mutated: %q", again)
	}
}

func TestMemoryCache_ClearAndClose(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Clear err = %v", err)
	}

	_ = c.Close()
	if err := c.Set(ctx, "a", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after Close err = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestStats_HitRate(t *testing.T) {
	if got := (Stats{}).HitRate(); got != 0 {
		t.Errorf("empty HitRate = %v", got)
	}
	if got := (Stats{Hits: 3, Misses: 1}).HitRate(); got != 75 {
		t.Errorf("HitRate = %v, want 75", got)
	}
}

func TestNew_FallsBackToMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := New(Config{DefaultTTL: time.Minute}, logger)
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("New without redis = %T, want *MemoryCache", c)
	}

	c = New(Config{RedisURL: "not a url", DefaultTTL: time.Minute}, logger)
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("New with bad redis URL = %T, want *MemoryCache", c)
	}
}
