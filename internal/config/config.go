// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the settings of the portfolio binaries from
// environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/sohoj8245-gif/portfolio/internal/scheduler"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"your-secret-key-change-in-production",
}

// MinSecretLength is the minimum required length for signing secrets.
// AES-256 and HS256 keys need 32 bytes.
const MinSecretLength = 32

// Common holds settings shared by every binary.
type Common struct {
	Env       string `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel  string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"PORTFOLIO_LOG_FORMAT" envDefault:"text"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Common) IsDevelopment() bool {
	return c.Env == "development"
}

// Web configures the server-rendered frontend.
type Web struct {
	Common

	APIURL        string `env:"PORTFOLIO_API_URL" envDefault:"http://localhost:8001"`
	ServerHost    string `env:"PORTFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PORTFOLIO_SERVER_PORT" envDefault:"8080"`
	SessionDBPath string `env:"PORTFOLIO_SESSION_DB_PATH" envDefault:"./data/sessions.db"`
	SessionSecret string `env:"PORTFOLIO_SESSION_SECRET,required"`
}

// ServerAddr returns the full server address in host:port format.
func (c Web) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// API configures the REST backend.
type API struct {
	Common

	Host        string        `env:"PORTFOLIO_API_HOST" envDefault:"localhost"`
	Port        int           `env:"PORTFOLIO_API_PORT" envDefault:"8001"`
	DBDriver    string        `env:"PORTFOLIO_DB_DRIVER" envDefault:"sqlite"`
	DBDSN       string        `env:"PORTFOLIO_DB_DSN" envDefault:"./data/portfolio.db"`
	JWTSecret   string        `env:"PORTFOLIO_JWT_SECRET,required"`
	JWTTTL      time.Duration `env:"PORTFOLIO_JWT_TTL" envDefault:"24h"`
	CORSOrigins []string      `env:"PORTFOLIO_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Cache configuration
	RedisURL    string        `env:"PORTFOLIO_REDIS_URL"` // Optional Redis URL for distributed caching
	CachePrefix string        `env:"PORTFOLIO_CACHE_PREFIX" envDefault:"portfolio:"`
	CacheTTL    time.Duration `env:"PORTFOLIO_CACHE_TTL" envDefault:"5m"`

	// Maintenance job schedules (cron syntax or @every descriptors)
	LoginPruneSchedule string `env:"PORTFOLIO_LOGIN_PRUNE_SCHEDULE" envDefault:"@every 10m"`
	CacheStatsSchedule string `env:"PORTFOLIO_CACHE_STATS_SCHEDULE" envDefault:"@hourly"`
}

// Addr returns the API listen address in host:port format.
func (c API) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UseRedisCache returns true if Redis caching is configured.
func (c API) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Setup configures the bootstrap tool.
type Setup struct {
	Common

	APIURL    string `env:"PORTFOLIO_API_URL" envDefault:"http://localhost:8001"`
	StateFile string `env:"PORTFOLIO_STATE_FILE" envDefault:"./data/setup-state.json"`
}

// LoadWeb parses the frontend configuration.
func LoadWeb() (*Web, error) {
	cfg := &Web{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validateSecret("PORTFOLIO_SESSION_SECRET", cfg.SessionSecret); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAPI parses the backend configuration.
func LoadAPI() (*API, error) {
	cfg := &API{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validateSecret("PORTFOLIO_JWT_SECRET", cfg.JWTSecret); err != nil {
		return nil, err
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("PORTFOLIO_DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("PORTFOLIO_JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}
	if err := scheduler.ValidateSchedule(cfg.LoginPruneSchedule); err != nil {
		return nil, fmt.Errorf("PORTFOLIO_LOGIN_PRUNE_SCHEDULE: %w", err)
	}
	if err := scheduler.ValidateSchedule(cfg.CacheStatsSchedule); err != nil {
		return nil, fmt.Errorf("PORTFOLIO_CACHE_STATS_SCHEDULE: %w", err)
	}
	return cfg, nil
}

// LoadSetup parses the bootstrap tool configuration.
func LoadSetup() (*Setup, error) {
	cfg := &Setup{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func validateSecret(name, secret string) error {
	if len(secret) < MinSecretLength {
		return fmt.Errorf("%s must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			name, MinSecretLength, len(secret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if secret == weak {
			return fmt.Errorf("%s is a known default value and must not be used; "+
				"generate a secure secret with: openssl rand -base64 32", name)
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(secret) {
		slog.Warn(name + " has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
