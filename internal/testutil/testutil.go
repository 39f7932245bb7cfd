// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the portfolio project.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sohoj8245-gif/portfolio/internal/repository"
	"github.com/sohoj8245-gif/portfolio/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a logger that discards everything.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSessionDB creates a temporary session database with migrations
// applied. It is closed when the test ends.
func TestSessionDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := store.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// TestRepository creates a migrated SQLite content repository in a
// temporary directory. It is closed when the test ends.
func TestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	db, err := repository.Open("sqlite", filepath.Join(t.TempDir(), "portfolio.db"), TestLoggerSilent())
	if err != nil {
		t.Fatalf("repository.Open: %v", err)
	}
	repo := repository.New(db)
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return repo
}
