// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/sohoj8245-gif/portfolio/internal/portfolio"
	"github.com/sohoj8245-gif/portfolio/internal/render"
)

// flashAndRedirect stores msg for the next page and redirects with 303.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url string, msg portfolio.Message) {
	renderer.SetFlash(r, msg)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// parseFormOrRedirect parses the request form and redirects back with an
// error message on failure.
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, renderer, redirectURL, portfolio.NewMessage("Invalid form data", portfolio.MessageError))
		return false
	}
	return true
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logger *slog.Logger, logMsg string, args ...any) {
	logger.Error(logMsg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// safeReturnPath accepts only local absolute paths; anything else falls
// back to the portfolio page.
func safeReturnPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return RouteRoot
	}
	return p
}
