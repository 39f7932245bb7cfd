// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers of the portfolio backend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sohoj8245-gif/portfolio/internal/auth"
	"github.com/sohoj8245-gif/portfolio/internal/cache"
	"github.com/sohoj8245-gif/portfolio/internal/middleware"
	"github.com/sohoj8245-gif/portfolio/internal/model"
	"github.com/sohoj8245-gif/portfolio/internal/repository"
)

const (
	// maxBodySize caps JSON request bodies.
	maxBodySize = 1 << 20
	// compressLevel is the gzip level for JSON responses.
	compressLevel = 5
)

// Store is the persistence the handlers need. *repository.Repository
// satisfies it.
type Store interface {
	CountAdmins(ctx context.Context) (int64, error)
	CreateAdmin(ctx context.Context, username, passwordHash string) error
	FindAdmin(ctx context.Context, username string) (repository.Admin, error)
	UpdateAdminPassword(ctx context.Context, id uint, passwordHash string) error

	Hero(ctx context.Context) (model.Hero, bool, error)
	SaveHero(ctx context.Context, h model.Hero) error
	About(ctx context.Context) (model.About, bool, error)
	SaveAbout(ctx context.Context, a model.About) error
	Contact(ctx context.Context) (model.Contact, bool, error)
	SaveContact(ctx context.Context, c model.Contact) error

	Skills(ctx context.Context) ([]model.Skill, error)
	CreateSkill(ctx context.Context, s model.Skill) (string, error)
	UpdateSkill(ctx context.Context, id string, s model.Skill) error
	DeleteSkill(ctx context.Context, id string) error

	Projects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, p model.Project) (string, error)
	UpdateProject(ctx context.Context, id string, p model.Project) error
	DeleteProject(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}

var _ Store = (*repository.Repository)(nil)

// section wraps a singleton so a cached "never saved" result is
// distinguishable from a saved empty one.
type section[T any] struct {
	Value T    `json:"value"`
	Found bool `json:"found"`
}

// Config holds the handler's tunables.
type Config struct {
	CORSOrigins []string
	CacheTTL    time.Duration
	Login       middleware.LoginProtectionConfig
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store  Store
	tokens *auth.Tokens
	logger *slog.Logger
	login  *middleware.LoginProtection
	cors   *cors.Cors

	hero     *cache.TypedCache[section[model.Hero]]
	about    *cache.TypedCache[section[model.About]]
	contact  *cache.TypedCache[section[model.Contact]]
	skills   *cache.TypedCache[[]model.Skill]
	projects *cache.TypedCache[[]model.Project]
}

// NewHandler creates the API handler. c caches public reads.
func NewHandler(store Store, tokens *auth.Tokens, c cache.Cacher, cfg Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Handler{
		store:  store,
		tokens: tokens,
		logger: logger,
		login:  middleware.NewLoginProtection(cfg.Login),
		cors: cors.New(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}),
		hero:     cache.NewTypedCache[section[model.Hero]](c, cfg.CacheTTL),
		about:    cache.NewTypedCache[section[model.About]](c, cfg.CacheTTL),
		contact:  cache.NewTypedCache[section[model.Contact]](c, cfg.CacheTTL),
		skills:   cache.NewTypedCache[[]model.Skill](c, cfg.CacheTTL),
		projects: cache.NewTypedCache[[]model.Project](c, cfg.CacheTTL),
	}
}

// Routes mounts the API under /api.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(h.cors.Handler)
		r.Use(chimw.Compress(compressLevel))

		r.Get("/health", h.Health)

		r.Post("/admin/setup", h.Setup)
		r.Post("/admin/login", h.Login)

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/hero", h.GetHero)
			r.Get("/about", h.GetAbout)
			r.Get("/contact", h.GetContact)
			r.Get("/skills", h.ListSkills)
			r.Get("/projects", h.ListProjects)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireAdmin)

				r.Put("/hero", h.PutHero)
				r.Put("/about", h.PutAbout)
				r.Put("/contact", h.PutContact)

				r.Post("/skills", h.CreateSkill)
				r.Put("/skills/{id}", h.UpdateSkill)
				r.Delete("/skills/{id}", h.DeleteSkill)

				r.Post("/projects", h.CreateProject)
				r.Put("/projects/{id}", h.UpdateProject)
				r.Delete("/projects/{id}", h.DeleteProject)
			})
		})
	})
}

// PruneLoginAttempts drops stale login tracking. It runs as a scheduled job.
func (h *Handler) PruneLoginAttempts(context.Context) error {
	h.login.Prune()
	return nil
}

// messageResponse is the body of successful writes.
type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, messageResponse{Message: message})
}

func (h *Handler) writeInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg, "error", err, "path", r.URL.Path)
	middleware.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeBody reads a JSON body into dst, writing a 422 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.WriteAPIError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		middleware.WriteAPIError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}
	return true
}

// invalidate drops a cached section after a write. Failures only cost a
// stale read until the entry expires.
func (h *Handler) invalidate(ctx context.Context, key string) {
	var err error
	switch key {
	case cache.KeyHero:
		err = h.hero.Delete(ctx, key)
	case cache.KeyAbout:
		err = h.about.Delete(ctx, key)
	case cache.KeyContact:
		err = h.contact.Delete(ctx, key)
	case cache.KeySkills:
		err = h.skills.Delete(ctx, key)
	case cache.KeyProjects:
		err = h.projects.Delete(ctx, key)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "cache invalidation failed", "key", key, "error", err)
	}
}

// Health reports whether the database answers.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "health check failed", "error", err)
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
