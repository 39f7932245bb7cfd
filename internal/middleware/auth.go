// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/sohoj8245-gif/portfolio/internal/i18n"
	"github.com/sohoj8245-gif/portfolio/internal/kv"
)

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// RequireSession creates middleware that requires a stored admin token.
// It redirects to the login page when the browser session holds none.
func RequireSession(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetString(r.Context(), kv.KeyAdminToken) == "" {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfAuthenticated sends visitors who already hold a token from the
// login page to dest.
func RedirectIfAuthenticated(sm *scs.SessionManager, dest string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && sm.GetString(r.Context(), kv.KeyAdminToken) != "" {
				http.Redirect(w, r, dest, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LanguageOverride applies a ?lang= query parameter to the visitor's
// stored language before the page renders. Unsupported values are ignored.
func LanguageOverride(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if q := r.URL.Query().Get("lang"); q != "" {
				if lang, ok := i18n.ParseLanguage(q); ok {
					_ = i18n.NewLocale(kv.NewSession(r.Context(), sm)).Set(lang)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
