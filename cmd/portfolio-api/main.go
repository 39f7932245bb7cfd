// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command portfolio-api serves the REST backend behind the portfolio site.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/sohoj8245-gif/portfolio/internal/auth"
	"github.com/sohoj8245-gif/portfolio/internal/cache"
	"github.com/sohoj8245-gif/portfolio/internal/config"
	"github.com/sohoj8245-gif/portfolio/internal/handler/api"
	"github.com/sohoj8245-gif/portfolio/internal/logging"
	"github.com/sohoj8245-gif/portfolio/internal/middleware"
	"github.com/sohoj8245-gif/portfolio/internal/repository"
	"github.com/sohoj8245-gif/portfolio/internal/scheduler"
	"github.com/sohoj8245-gif/portfolio/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portfolio-api - REST backend for the portfolio site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_JWT_SECRET     Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DB_DRIVER      sqlite|postgres (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DB_DSN         Database path or DSN (default: ./data/portfolio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_API_PORT       Listen port (default: 8001)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_CORS_ORIGINS   Allowed origins, comma separated (default: *)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_REDIS_URL      Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Printf("portfolio-api %s\n", info)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.LoadAPI()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)
	logger.Info("starting portfolio-api", info.LogAttrs()...)

	logger.Info("initializing database", "driver", cfg.DBDriver)
	db, err := repository.Open(cfg.DBDriver, cfg.DBDSN, logger)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	repo := repository.New(db)
	defer func() {
		if err := repo.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := repo.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("database ready")

	responseCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTL,
	}, logger)
	defer func() {
		if err := responseCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	apiHandler := api.NewHandler(repo, auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL), responseCache, api.Config{
		CORSOrigins: cfg.CORSOrigins,
		CacheTTL:    cfg.CacheTTL,
		Login:       middleware.DefaultLoginProtectionConfig(),
	}, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	apiHandler.Routes(r)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	jobs := scheduler.New(logger)
	if err := jobs.Register("login-prune", cfg.LoginPruneSchedule, apiHandler.PruneLoginAttempts); err != nil {
		return err
	}
	if sc, ok := responseCache.(interface{ Stats() cache.Stats }); ok {
		err := jobs.Register("cache-stats", cfg.CacheStatsSchedule, func(context.Context) error {
			st := sc.Stats()
			logger.Info("response cache stats", "hits", st.Hits, "misses", st.Misses, "hit_rate", st.HitRate())
			return nil
		})
		if err != nil {
			return err
		}
	}
	jobs.Start()
	defer jobs.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
