// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"sync"
	"time"
)

// LoginProtection combines per-IP rate limiting with per-username lockout.
type LoginProtection struct {
	ips *limiterCache[string]

	mu       sync.Mutex
	attempts map[string]*loginAttempt

	maxFailedAttempts int
	lockoutDuration   time.Duration
	attemptWindow     time.Duration
	now               func() time.Time
}

type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is login requests per second per IP.
	IPRateLimit float64
	IPBurst     int
	// MaxFailedAttempts within AttemptWindow locks the username.
	MaxFailedAttempts int
	// LockoutDuration doubles with each consecutive lockout, capped at 24h.
	LockoutDuration time.Duration
	AttemptWindow   time.Duration
}

// DefaultLoginProtectionConfig returns the production defaults.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// NewLoginProtection creates a login protection instance. Zero config values
// take their defaults.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	def := DefaultLoginProtectionConfig()
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = def.IPRateLimit
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = def.IPBurst
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = def.AttemptWindow
	}

	return &LoginProtection{
		ips:               newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		attempts:          make(map[string]*loginAttempt),
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
		attemptWindow:     cfg.AttemptWindow,
		now:               time.Now,
	}
}

// AllowIP reports whether another login request from ip may proceed.
func (lp *LoginProtection) AllowIP(ip string) bool {
	lp.ips.clearIfExceeds(10000)
	return lp.ips.get(ip).Allow()
}

// IsLocked reports whether username is locked and for how much longer.
func (lp *LoginProtection) IsLocked(username string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.attempts[username]
	if !ok {
		return false, 0
	}
	now := lp.now()
	if now.Before(a.lockedUntil) {
		return true, a.lockedUntil.Sub(now)
	}
	return false, 0
}

// RecordFailure counts a failed login and reports whether username is now
// locked, with the lock duration.
func (lp *LoginProtection) RecordFailure(username string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := lp.now()
	a, ok := lp.attempts[username]
	if !ok {
		lp.attempts[username] = &loginAttempt{count: 1, firstFailed: now}
		return false, 0
	}

	if a.count == 0 || now.Sub(a.firstFailed) > lp.attemptWindow {
		a.count = 1
		a.firstFailed = now
		return false, 0
	}

	a.count++
	if a.count < lp.maxFailedAttempts {
		return false, 0
	}

	d := lp.lockoutDuration
	for i := 0; i < a.lockouts; i++ {
		d *= 2
		if d > 24*time.Hour {
			d = 24 * time.Hour
			break
		}
	}
	a.lockedUntil = now.Add(d)
	a.lockouts++
	a.count = 0

	slog.Warn("admin login locked due to failed attempts",
		"username", username,
		"lockouts", a.lockouts,
		"duration", d,
	)
	return true, d
}

// RecordSuccess clears the failure history of username.
func (lp *LoginProtection) RecordSuccess(username string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	delete(lp.attempts, username)
}

// RemainingAttempts returns how many failures username has left before a lockout.
func (lp *LoginProtection) RemainingAttempts(username string) int {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.attempts[username]
	if !ok || lp.now().Sub(a.firstFailed) > lp.attemptWindow {
		return lp.maxFailedAttempts
	}
	return max(lp.maxFailedAttempts-a.count, 0)
}

// Prune drops expired entries. Callers run it periodically.
func (lp *LoginProtection) Prune() {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := lp.now()
	for name, a := range lp.attempts {
		if now.After(a.lockedUntil) && now.Sub(a.firstFailed) > lp.attemptWindow {
			delete(lp.attempts, name)
		}
	}
}
