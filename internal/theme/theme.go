// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package theme holds the visitor's color theme. The theme only selects
// style variants; it never influences what content is fetched.
package theme

import (
	"fmt"
	"sync"

	"github.com/sohoj8245-gif/portfolio/internal/kv"
)

// Mode is a color theme.
type Mode string

// Theme modes.
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// DefaultMode is used when nothing valid is stored.
const DefaultMode = Light

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Other returns the mode a toggle switches to.
func (m Mode) Other() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Store is the visitor's active theme, persisted in a kv.Store.
type Store struct {
	mu    sync.RWMutex
	store kv.Store
	mode  Mode
}

// NewStore restores the theme from store, defaulting to light.
func NewStore(store kv.Store) *Store {
	mode := DefaultMode
	if v, ok := store.Get(kv.KeyTheme); ok && Mode(v).Valid() {
		mode = Mode(v)
	}
	return &Store{store: store, mode: mode}
}

// Mode returns the active theme.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// IsDark reports whether the dark theme is active.
func (s *Store) IsDark() bool {
	return s.Mode() == Dark
}

// Set changes and persists the theme.
func (s *Store) Set(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("unsupported theme %q", mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(kv.KeyTheme, string(mode)); err != nil {
		return fmt.Errorf("persisting theme: %w", err)
	}
	s.mode = mode
	return nil
}

// Toggle switches between light and dark and returns the new mode.
func (s *Store) Toggle() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.mode.Other()
	if err := s.store.Set(kv.KeyTheme, string(next)); err != nil {
		return s.mode, fmt.Errorf("persisting theme: %w", err)
	}
	s.mode = next
	return next, nil
}

// Pick returns light when the light theme is active and dark otherwise.
func (s *Store) Pick(light, dark string) string {
	if s.Mode() == Light {
		return light
	}
	return dark
}
