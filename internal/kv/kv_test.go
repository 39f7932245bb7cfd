// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexedwards/scs/v2"
)

// exerciseStore runs the common Store contract against s.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) reported present")
	}

	if err := s.Set(KeyLanguage, "bn"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := s.Get(KeyLanguage); !ok || v != "bn" {
		t.Errorf("Get = %q, %v; want bn, true", v, ok)
	}

	if err := s.Set(KeyLanguage, "en"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, _ := s.Get(KeyLanguage); v != "en" {
		t.Errorf("Get after overwrite = %q, want en", v)
	}

	if err := s.Remove(KeyLanguage); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := s.Get(KeyLanguage); ok {
		t.Error("key still present after Remove")
	}
	if err := s.Remove(KeyLanguage); err != nil {
		t.Errorf("Remove of missing key: %v", err)
	}
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	exerciseStore(t, f)
}

func TestFile_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := f.Set(KeyAdminToken, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok := reopened.Get(KeyAdminToken); !ok || v != "tok" {
		t.Errorf("reopened Get = %q, %v; want tok, true", v, ok)
	}

	if err := reopened.Remove(KeyAdminToken); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	again, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen after remove: %v", err)
	}
	if _, ok := again.Get(KeyAdminToken); ok {
		t.Error("token still persisted after Remove")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("state file mode = %o, want 600", perm)
	}
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Error("expected error for corrupt state file")
	}
}

func TestSession(t *testing.T) {
	sm := scs.New()
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	exerciseStore(t, NewSession(ctx, sm))
}

func TestSession_EmptyValueIsPresent(t *testing.T) {
	sm := scs.New()
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := NewSession(ctx, sm)
	if err := s.Set(KeyTheme, ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := s.Get(KeyTheme); !ok {
		t.Error("empty value should still be reported as present")
	}
}
