// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"net/http"
	"testing"

	"github.com/sohoj8245-gif/portfolio/internal/kv"
	"github.com/sohoj8245-gif/portfolio/internal/testutil"
)

func TestNew_DevMode(t *testing.T) {
	sm := New(testutil.TestSessionDB(t), true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name != "portfolio_session" {
		t.Errorf("cookie name = %q, want portfolio_session", sm.Cookie.Name)
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(testutil.TestSessionDB(t), false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-portfolio_session" {
		t.Errorf("expected __Host- cookie name, got %q", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	sm := New(testutil.TestSessionDB(t), true)

	if sm.Lifetime != Lifetime {
		t.Errorf("Lifetime = %v, want %v", sm.Lifetime, Lifetime)
	}
	if sm.IdleTimeout != IdleTimeout {
		t.Errorf("IdleTimeout = %v, want %v", sm.IdleTimeout, IdleTimeout)
	}
	if !sm.Cookie.Persist {
		t.Error("expected a persistent cookie")
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
	if sm.Store == nil {
		t.Error("expected Store to be initialized")
	}
}

func TestStore_OverBrowserSession(t *testing.T) {
	sm := New(testutil.TestSessionDB(t), true)
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := NewStore(kv.NewSession(ctx, sm), &fakeAuth{token: "jwt"}, quietLogger())
	if res := s.Login(ctx, "admin", "pw"); !res.Success {
		t.Fatalf("Login() = %+v", res)
	}
	if got := sm.GetString(ctx, kv.KeyAdminToken); got != "jwt" {
		t.Errorf("session value = %q, want jwt", got)
	}

	// A second store over the same request context sees the same token.
	again := NewStore(kv.NewSession(ctx, sm), &fakeAuth{}, quietLogger())
	if again.Token() != "jwt" {
		t.Errorf("restored Token() = %q", again.Token())
	}
}
