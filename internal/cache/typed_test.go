// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type section struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestTypedCache_GetOrLoad(t *testing.T) {
	tc := NewTypedCache[section](NewMemoryCache(time.Minute), time.Minute)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (section, error) {
		calls++
		return section{Name: "skills", Items: []string{"Go"}}, nil
	}

	for range 3 {
		got, err := tc.GetOrLoad(ctx, KeySkills, load)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if got.Name != "skills" || len(got.Items) != 1 {
			t.Errorf("GetOrLoad = %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	if err := tc.Delete(ctx, KeySkills); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, _ = tc.GetOrLoad(ctx, KeySkills, load)
	if calls != 2 {
		t.Errorf("load called %d times after Delete, want 2", calls)
	}
}

func TestTypedCache_LoadErrorNotCached(t *testing.T) {
	tc := NewTypedCache[section](NewMemoryCache(time.Minute), time.Minute)
	ctx := context.Background()
	boom := errors.New("db down")

	_, err := tc.GetOrLoad(ctx, KeyHero, func(context.Context) (section, error) {
		return section{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if _, ok := tc.Get(ctx, KeyHero); ok {
		t.Error("failed load must not populate the cache")
	}
}

func TestTypedCache_UndecodableEntryIsMiss(t *testing.T) {
	mem := NewMemoryCache(time.Minute)
	tc := NewTypedCache[section](mem, time.Minute)
	ctx := context.Background()

	_ = mem.Set(ctx, KeyAbout, []byte("{not json"), 0)
	if _, ok := tc.Get(ctx, KeyAbout); ok {
		t.Error("corrupt entry returned as hit")
	}
}

func TestTypedCache_DeleteDuringLoadDropsResult(t *testing.T) {
	tc := NewTypedCache[section](NewMemoryCache(time.Minute), time.Minute)
	ctx := context.Background()

	got, err := tc.GetOrLoad(ctx, KeySkills, func(ctx context.Context) (section, error) {
		// A write lands while the old value is being read.
		if err := tc.Delete(ctx, KeySkills); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		return section{Name: "old"}, nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}
	if got.Name != "old" {
		t.Errorf("GetOrLoad = %+v, want the loaded value", got)
	}
	if _, ok := tc.Get(ctx, KeySkills); ok {
		t.Error("value loaded before Delete was cached")
	}

	// The next load is stored again.
	_, _ = tc.GetOrLoad(ctx, KeySkills, func(context.Context) (section, error) {
		return section{Name: "new"}, nil
	})
	if v, ok := tc.Get(ctx, KeySkills); !ok || v.Name != "new" {
		t.Errorf("Get = %+v, %v, want new", v, ok)
	}
}
