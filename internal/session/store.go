// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session holds the admin's authentication token and the browser
// session machinery it is stored in.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sohoj8245-gif/portfolio/internal/client"
	"github.com/sohoj8245-gif/portfolio/internal/kv"
)

// ErrLoginFailed is the message shown when the API gives no reason.
const ErrLoginFailed = "Login failed"

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginResult is the outcome of Store.Login. Error is a human-readable
// message and is empty on success.
type LoginResult struct {
	Success bool
	Error   string
}

// Store is the admin session: an optional bearer token persisted in a
// kv.Store. It implements client.TokenSource, so a Client built with it
// sends the token on every request while one is set.
type Store struct {
	mu     sync.RWMutex
	kv     kv.Store
	auth   Authenticator
	logger *slog.Logger
	token  string
}

// NewStore restores any saved token from store.
func NewStore(store kv.Store, auth Authenticator, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	token, _ := store.Get(kv.KeyAdminToken)
	return &Store{
		kv:     store,
		auth:   auth,
		logger: logger,
		token:  token,
	}
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a non-empty token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Login authenticates against the API. Failures are reported in the
// result, never as a panic or error; a failed login leaves the current
// token, in memory and in storage, untouched.
func (s *Store) Login(ctx context.Context, username, password string) LoginResult {
	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.logger.Info("admin login failed", "username", username, "error", err)
		return LoginResult{Error: loginMessage(err)}
	}

	if err := s.setToken(token); err != nil {
		s.logger.Error("failed to persist session token", "error", err)
		return LoginResult{Error: ErrLoginFailed}
	}

	s.logger.Info("admin logged in", "username", username)
	return LoginResult{Success: true}
}

// Logout forgets the token. The in-memory token is always cleared; the
// returned error reports a failure to remove it from storage.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := s.kv.Remove(kv.KeyAdminToken); err != nil {
		return fmt.Errorf("removing session token: %w", err)
	}
	return nil
}

// setToken stores and persists token as one step.
func (s *Store) setToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return errors.New("empty token")
	}
	if err := s.kv.Set(kv.KeyAdminToken, token); err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}
	s.token = token
	return nil
}

// loginMessage picks the text shown on the login form.
func loginMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return ErrLoginFailed
}

var _ client.TokenSource = (*Store)(nil)
