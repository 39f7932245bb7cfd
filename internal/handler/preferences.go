// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/sohoj8245-gif/portfolio/internal/i18n"
	"github.com/sohoj8245-gif/portfolio/internal/kv"
	"github.com/sohoj8245-gif/portfolio/internal/theme"
)

// PreferencesHandler flips the visitor's language and theme. Both are kept
// in the browser session, so they survive reloads.
type PreferencesHandler struct {
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(sm *scs.SessionManager, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{sessionManager: sm, logger: logger}
}

// ToggleLanguage switches between English and Bangla.
func (h *PreferencesHandler) ToggleLanguage(w http.ResponseWriter, r *http.Request) {
	loc := i18n.NewLocale(kv.NewSession(r.Context(), h.sessionManager))
	if _, err := loc.Toggle(); err != nil {
		h.logger.Warn("failed to save language", "error", err)
	}
	http.Redirect(w, r, safeReturnPath(r.PostFormValue("return")), http.StatusSeeOther)
}

// ToggleTheme switches between the light and dark theme.
func (h *PreferencesHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	th := theme.NewStore(kv.NewSession(r.Context(), h.sessionManager))
	if _, err := th.Toggle(); err != nil {
		h.logger.Warn("failed to save theme", "error", err)
	}
	http.Redirect(w, r, safeReturnPath(r.PostFormValue("return")), http.StatusSeeOther)
}
