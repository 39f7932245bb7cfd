// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
	"time"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoadWeb_Defaults(t *testing.T) {
	// Clear environment and set only required var
	os.Clearenv()
	setEnv(t, "PORTFOLIO_SESSION_SECRET", testSecret)

	cfg, err := LoadWeb()
	if err != nil {
		t.Fatalf("LoadWeb() error: %v", err)
	}

	if cfg.APIURL != "http://localhost:8001" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.SessionDBPath != "./data/sessions.db" {
		t.Errorf("SessionDBPath = %q", cfg.SessionDBPath)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("LogLevel/LogFormat = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadWeb_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTFOLIO_SESSION_SECRET", testSecret)
	setEnv(t, "PORTFOLIO_API_URL", "https://api.example.com")
	setEnv(t, "PORTFOLIO_SERVER_HOST", "0.0.0.0")
	setEnv(t, "PORTFOLIO_SERVER_PORT", "3000")
	setEnv(t, "PORTFOLIO_ENV", "production")
	setEnv(t, "PORTFOLIO_LOG_FORMAT", "json")

	cfg, err := LoadWeb()
	if err != nil {
		t.Fatalf("LoadWeb() error: %v", err)
	}

	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true in production")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
}

func TestLoadWeb_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	if _, err := LoadWeb(); err == nil {
		t.Fatal("LoadWeb() should fail when PORTFOLIO_SESSION_SECRET is not set")
	}
}

func TestLoad_SecretValidation(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{"empty", "", true},
		{"short", "short", true},
		{"31_bytes", "1234567890123456789012345678901", true},
		{"known_default", "change-me-to-32-byte-secret-key!", true},
		{"32_bytes", "12345678901234567890123456789012", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "PORTFOLIO_SESSION_SECRET", tt.secret)
			setEnv(t, "PORTFOLIO_JWT_SECRET", tt.secret)

			if _, err := LoadWeb(); (err != nil) != tt.wantErr {
				t.Errorf("LoadWeb() error = %v, wantErr %v", err, tt.wantErr)
			}
			if _, err := LoadAPI(); (err != nil) != tt.wantErr {
				t.Errorf("LoadAPI() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAPI_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTFOLIO_JWT_SECRET", testSecret)

	cfg, err := LoadAPI()
	if err != nil {
		t.Fatalf("LoadAPI() error: %v", err)
	}

	if cfg.Addr() != "localhost:8001" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.DBDriver != "sqlite" || cfg.DBDSN != "./data/portfolio.db" {
		t.Errorf("DB = %q %q", cfg.DBDriver, cfg.DBDSN)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v", cfg.JWTTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true without PORTFOLIO_REDIS_URL")
	}
	if cfg.CachePrefix != "portfolio:" || cfg.CacheTTL != 5*time.Minute {
		t.Errorf("cache = %q %v", cfg.CachePrefix, cfg.CacheTTL)
	}
	if cfg.LoginPruneSchedule != "@every 10m" || cfg.CacheStatsSchedule != "@hourly" {
		t.Errorf("schedules = %q %q", cfg.LoginPruneSchedule, cfg.CacheStatsSchedule)
	}
}

func TestLoadAPI_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTFOLIO_JWT_SECRET", testSecret)
	setEnv(t, "PORTFOLIO_DB_DRIVER", "postgres")
	setEnv(t, "PORTFOLIO_DB_DSN", "host=db user=app dbname=portfolio")
	setEnv(t, "PORTFOLIO_CORS_ORIGINS", "https://a.example,https://b.example")
	setEnv(t, "PORTFOLIO_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "PORTFOLIO_JWT_TTL", "1h")

	cfg, err := LoadAPI()
	if err != nil {
		t.Fatalf("LoadAPI() error: %v", err)
	}

	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false")
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("JWTTTL = %v", cfg.JWTTTL)
	}
}

func TestLoadAPI_UnknownDriver(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTFOLIO_JWT_SECRET", testSecret)
	setEnv(t, "PORTFOLIO_DB_DRIVER", "mysql")

	if _, err := LoadAPI(); err == nil {
		t.Fatal("LoadAPI() should reject unsupported drivers")
	}
}

func TestLoadAPI_InvalidSchedule(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTFOLIO_JWT_SECRET", testSecret)
	setEnv(t, "PORTFOLIO_LOGIN_PRUNE_SCHEDULE", "every ten minutes")

	if _, err := LoadAPI(); err == nil {
		t.Fatal("LoadAPI() should reject an invalid schedule")
	}
}

func TestLoadSetup_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadSetup()
	if err != nil {
		t.Fatalf("LoadSetup() error: %v", err)
	}
	if cfg.StateFile != "./data/setup-state.json" {
		t.Errorf("StateFile = %q", cfg.StateFile)
	}
	if cfg.APIURL != "http://localhost:8001" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcdefABCDEFabcdefABCDEFabcdefAB", false},
		{"abcABC123abcABC123abcABC123abcAB", true},
		{testSecret, true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
