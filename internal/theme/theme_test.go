// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"testing"

	"github.com/sohoj8245-gif/portfolio/internal/kv"
)

func TestNewStore_Default(t *testing.T) {
	if got := NewStore(kv.NewMemory()).Mode(); got != Light {
		t.Errorf("Mode() = %q, want light", got)
	}

	store := kv.NewMemory()
	_ = store.Set(kv.KeyTheme, "neon")
	if got := NewStore(store).Mode(); got != Light {
		t.Errorf("Mode() with invalid stored value = %q, want light", got)
	}
}

func TestStore_ToggleIsInvolution(t *testing.T) {
	for _, start := range []Mode{Light, Dark} {
		s := NewStore(kv.NewMemory())
		if err := s.Set(start); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Toggle(); err != nil {
			t.Fatal(err)
		}
		if s.Mode() == start {
			t.Errorf("Toggle from %q did not change mode", start)
		}
		if _, err := s.Toggle(); err != nil {
			t.Fatal(err)
		}
		if s.Mode() != start {
			t.Errorf("Toggle twice from %q = %q", start, s.Mode())
		}
	}
}

func TestStore_Persists(t *testing.T) {
	backing := kv.NewMemory()
	s := NewStore(backing)

	mode, err := s.Toggle()
	if err != nil {
		t.Fatal(err)
	}
	if mode != Dark || !s.IsDark() {
		t.Errorf("Toggle() = %q, want dark", mode)
	}
	if v, _ := backing.Get(kv.KeyTheme); v != "dark" {
		t.Errorf("stored theme = %q, want dark", v)
	}
	if NewStore(backing).Mode() != Dark {
		t.Error("restored store should be dark")
	}
}

func TestStore_Pick(t *testing.T) {
	s := NewStore(kv.NewMemory())
	if got := s.Pick("bg-white", "bg-slate-900"); got != "bg-white" {
		t.Errorf("light Pick = %q", got)
	}
	_ = s.Set(Dark)
	if got := s.Pick("bg-white", "bg-slate-900"); got != "bg-slate-900" {
		t.Errorf("dark Pick = %q", got)
	}
}

func TestStore_SetRejectsInvalid(t *testing.T) {
	s := NewStore(kv.NewMemory())
	if err := s.Set("sepia"); err == nil {
		t.Error("expected error for invalid mode")
	}
}
