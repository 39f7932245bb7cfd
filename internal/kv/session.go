// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// Session is a Store scoped to one browser session. It is the server-side
// counterpart of browser local storage: values live in the scs session
// identified by the request's session cookie.
//
// A Session is bound to a request context that has passed through
// SessionManager.LoadAndSave; it must not outlive that request.
type Session struct {
	sm  *scs.SessionManager
	ctx context.Context
}

// NewSession binds sm to the session loaded into ctx.
func NewSession(ctx context.Context, sm *scs.SessionManager) *Session {
	return &Session{sm: sm, ctx: ctx}
}

// Get implements Store.
func (s *Session) Get(key string) (string, bool) {
	if !s.sm.Exists(s.ctx, key) {
		return "", false
	}
	return s.sm.GetString(s.ctx, key), true
}

// Set implements Store.
func (s *Session) Set(key, value string) error {
	s.sm.Put(s.ctx, key, value)
	return nil
}

// Remove implements Store.
func (s *Session) Remove(key string) error {
	s.sm.Remove(s.ctx, key)
	return nil
}
