// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/sohoj8245-gif/portfolio/internal/kv"
	"github.com/sohoj8245-gif/portfolio/internal/portfolio"
	"github.com/sohoj8245-gif/portfolio/internal/render"
	"github.com/sohoj8245-gif/portfolio/internal/session"
)

// AuthHandler handles the admin login and logout routes.
type AuthHandler struct {
	auth           session.Authenticator
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth session.Authenticator, renderer *render.Renderer, sm *scs.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:           auth,
		renderer:       renderer,
		sessionManager: sm,
		logger:         logger,
	}
}

// LoginData is the data behind the login template.
type LoginData struct {
	Username string
	Error    string
}

// sessionStore binds the admin token store to the request's browser session.
func (h *AuthHandler) sessionStore(r *http.Request) *session.Store {
	return session.NewStore(kv.NewSession(r.Context(), h.sessionManager), h.auth, h.logger)
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, LoginData{})
}

// Login checks the credentials against the API. On success the token is
// kept in the browser session and the admin panel opens; on failure the
// form is shown again with the reason.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, LoginData{Error: "Invalid form data"})
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	// Renew the session token to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, h.logger, "failed to renew session token", "error", err)
		return
	}

	res := h.sessionStore(r).Login(r.Context(), username, password)
	if !res.Success {
		h.renderLogin(w, r, http.StatusUnauthorized, LoginData{Username: username, Error: res.Error})
		return
	}

	loc, _ := h.renderer.Preferences(r)
	flashAndRedirect(w, r, h.renderer, RouteAdmin,
		portfolio.NewMessage(loc.T("Login successful", "লগইন সফল হয়েছে"), portfolio.MessageSuccess))
}

// Logout forgets the token and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore(r).Logout(); err != nil {
		h.logger.Warn("failed to clear session token", "error", err)
	}
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		h.logger.Warn("failed to renew session token", "error", err)
	}
	h.logger.Info("admin logged out")
	http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data LoginData) {
	loc, _ := h.renderer.Preferences(r)
	td := render.TemplateData{
		Title: loc.T("Admin Login", "অ্যাডমিন লগইন"),
		Data:  data,
	}
	if err := h.renderer.RenderStatus(w, r, status, pageLogin, td); err != nil {
		logAndInternalError(w, h.logger, "failed to render login page", "error", err)
	}
}
