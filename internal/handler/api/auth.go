// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sohoj8245-gif/portfolio/internal/auth"
	"github.com/sohoj8245-gif/portfolio/internal/middleware"
	"github.com/sohoj8245-gif/portfolio/internal/repository"
)

type contextKey string

const contextKeyAdmin contextKey = "admin"

// AdminFromContext returns the username RequireAdmin verified.
func AdminFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(contextKeyAdmin).(string)
	return name, ok
}

// credentials is the body of setup and login requests.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// RequireAdmin validates the bearer token. A missing credential is 403,
// a bad or expired one 401.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			middleware.WriteAPIError(w, http.StatusForbidden, "Not authenticated")
			return
		}

		username, err := h.tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				middleware.WriteAPIError(w, http.StatusUnauthorized, "Token expired")
				return
			}
			middleware.WriteAPIError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyAdmin, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Setup creates the first admin account. It refuses once any admin exists.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !decodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		middleware.WriteAPIError(w, http.StatusUnprocessableEntity, "Username and password are required")
		return
	}

	ctx := r.Context()
	n, err := h.store.CountAdmins(ctx)
	if err != nil {
		h.writeInternalError(w, r, "failed to count admins", err)
		return
	}
	if n > 0 {
		middleware.WriteAPIError(w, http.StatusBadRequest, "Admin already exists")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.writeInternalError(w, r, "failed to hash password", err)
		return
	}
	if err := h.store.CreateAdmin(ctx, strings.TrimSpace(in.Username), hash); err != nil {
		h.writeInternalError(w, r, "failed to create admin", err)
		return
	}

	h.logger.InfoContext(ctx, "admin created", "username", in.Username)
	writeMessage(w, "Admin created successfully")
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ip := middleware.ClientIP(r)
	if !h.login.AllowIP(ip) {
		h.logger.WarnContext(r.Context(), "login rate limit exceeded", "ip", ip)
		middleware.WriteAPIError(w, http.StatusTooManyRequests, "Too many login attempts")
		return
	}

	var in credentials
	if !decodeBody(w, r, &in) {
		return
	}

	ctx := r.Context()
	if locked, _ := h.login.IsLocked(in.Username); locked {
		middleware.WriteAPIError(w, http.StatusTooManyRequests, "Too many failed attempts, try again later")
		return
	}

	admin, err := h.store.FindAdmin(ctx, in.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.writeInternalError(w, r, "failed to load admin", err)
		return
	}

	valid := false
	if err == nil {
		valid, err = auth.CheckPassword(in.Password, admin.PasswordHash)
		if err != nil {
			h.logger.WarnContext(ctx, "stored password hash unreadable", "username", in.Username, "error", err)
		}
	}
	if !valid {
		h.login.RecordFailure(in.Username)
		h.logger.InfoContext(ctx, "admin login failed", "username", in.Username, "ip", ip)
		middleware.WriteAPIError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	h.login.RecordSuccess(in.Username)

	if auth.NeedsRehash(admin.PasswordHash) {
		if hash, err := auth.HashPassword(in.Password); err == nil {
			if err := h.store.UpdateAdminPassword(ctx, admin.ID, hash); err != nil {
				h.logger.WarnContext(ctx, "password rehash failed", "username", admin.Username, "error", err)
			}
		}
	}

	token, err := h.tokens.Issue(admin.Username)
	if err != nil {
		h.writeInternalError(w, r, "failed to issue token", err)
		return
	}

	h.logger.InfoContext(ctx, "admin logged in", "username", admin.Username)
	WriteJSON(w, http.StatusOK, loginResponse{Token: token, Message: "Login successful"})
}
