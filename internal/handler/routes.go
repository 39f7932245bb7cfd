// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sohoj8245-gif/portfolio/internal/client"
	"github.com/sohoj8245-gif/portfolio/internal/middleware"
	"github.com/sohoj8245-gif/portfolio/internal/render"
)

// RouterConfig holds everything the web frontend router needs.
type RouterConfig struct {
	Client         *client.Client
	Renderer       *render.Renderer
	SessionManager *scs.SessionManager
	Logger         *slog.Logger

	// SessionDB backs the health check. Nil skips the database ping.
	SessionDB *sql.DB
	Version   string

	Security middleware.SecurityHeadersConfig
	CSRF     middleware.CSRFConfig

	// LoginLimiter throttles login posts per client IP. Nil disables it.
	LoginLimiter *middleware.RateLimiter

	// Static is served under /static/. Nil serves no assets.
	Static fs.FS

	// RequestTimeout bounds each request. Zero uses 30 seconds.
	RequestTimeout time.Duration

	// AccessLog enables chi's request logger.
	AccessLog bool
}

// NewRouter builds the web frontend: the public page, the preference
// toggles, the login form, and the session-protected admin panel.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	frontendHandler := NewFrontendHandler(cfg.Client, cfg.Renderer, logger)
	authHandler := NewAuthHandler(cfg.Client, cfg.Renderer, cfg.SessionManager, logger)
	adminHandler := NewAdminHandler(cfg.Client, cfg.Renderer, cfg.SessionManager, logger)
	prefsHandler := NewPreferencesHandler(cfg.SessionManager, logger)
	healthHandler := NewHealthHandler(cfg.SessionDB, cfg.Version)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(timeout))
	r.Use(middleware.SecurityHeaders(cfg.Security))

	r.Get(RouteHealth, healthHandler.Health)

	if cfg.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(cfg.Static))))
	}

	r.Group(func(r chi.Router) {
		r.Use(cfg.SessionManager.LoadAndSave)
		r.Use(middleware.CSRF(cfg.CSRF))
		r.Use(middleware.LanguageOverride(cfg.SessionManager))

		r.Get(RouteRoot, frontendHandler.Home)
		r.Post(RouteLanguage, prefsHandler.ToggleLanguage)
		r.Post(RouteTheme, prefsHandler.ToggleTheme)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RedirectIfAuthenticated(cfg.SessionManager, RouteAdmin))
			if cfg.LoginLimiter != nil {
				r.Use(cfg.LoginLimiter.HTMLMiddleware())
			}
			r.Get(RouteLogin, authHandler.LoginForm)
			r.Post(RouteLogin, authHandler.Login)
		})
		r.Post(RouteLogout, authHandler.Logout)

		r.Route(RouteAdmin, func(r chi.Router) {
			r.Use(middleware.RequireSession(cfg.SessionManager))

			r.Get(RouteRoot, adminHandler.Dashboard)
			r.Post("/hero", adminHandler.SaveHero)
			r.Post("/about", adminHandler.SaveAbout)
			r.Post("/contact", adminHandler.SaveContact)

			r.Route("/skills", func(r chi.Router) {
				r.Post(RouteRoot, adminHandler.AddSkill)
				r.Post(RouteSuffixBatch, adminHandler.SaveSkills)
				r.Post(RouteParamID, adminHandler.UpdateSkill)
				r.Post(RouteParamID+RouteSuffixDelete, adminHandler.DeleteSkill)
			})
			r.Route("/projects", func(r chi.Router) {
				r.Post(RouteRoot, adminHandler.AddProject)
				r.Post(RouteSuffixBatch, adminHandler.SaveProjects)
				r.Post(RouteParamID, adminHandler.UpdateProject)
				r.Post(RouteParamID+RouteSuffixDelete, adminHandler.DeleteProject)
			})
		})
	})

	return r
}
