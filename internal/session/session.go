// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

const (
	// Lifetime caps a browser session regardless of activity.
	Lifetime = 30 * 24 * time.Hour
	// IdleTimeout drops sessions unused for this long.
	IdleTimeout = 7 * 24 * time.Hour
)

// New returns the browser session manager backed by the sessions table of
// db. A session holds one visitor's admin token and preferences.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)
	sm.Lifetime = Lifetime
	sm.IdleTimeout = IdleTimeout

	sm.Cookie.Name = "portfolio_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Persist = true
	if !isDev {
		// __Host- requires Secure and Path=/ with no Domain.
		sm.Cookie.Name = "__Host-portfolio_session"
		sm.Cookie.Secure = true
		sm.Cookie.Path = "/"
	}
	return sm
}
