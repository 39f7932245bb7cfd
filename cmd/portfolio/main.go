// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command portfolio serves the public portfolio page and the admin panel.
// All content is read from and written to the portfolio API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sohoj8245-gif/portfolio/internal/client"
	"github.com/sohoj8245-gif/portfolio/internal/config"
	"github.com/sohoj8245-gif/portfolio/internal/handler"
	"github.com/sohoj8245-gif/portfolio/internal/logging"
	"github.com/sohoj8245-gif/portfolio/internal/middleware"
	"github.com/sohoj8245-gif/portfolio/internal/render"
	"github.com/sohoj8245-gif/portfolio/internal/session"
	"github.com/sohoj8245-gif/portfolio/internal/store"
	"github.com/sohoj8245-gif/portfolio/internal/version"
	"github.com/sohoj8245-gif/portfolio/web"
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
		_, _ = fmt.Fprintf(os.Stderr, "portfolio - bilingual portfolio website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SESSION_SECRET   Session/CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_API_URL          Portfolio API root (default: http://localhost:8001)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_HOST      Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_PORT      Listen port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SESSION_DB_PATH  Session database (default: ./data/sessions.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ENV              development|production (default: development)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Printf("portfolio %s\n", info)
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

	cfg, err := config.LoadWeb()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)
	logger.Info("starting portfolio", info.LogAttrs()...)

	db, err := store.NewDB(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("initializing session database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing session database", "error", err)
		}
	}()
	applied, err := store.Migrate(context.Background(), db)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if applied > 0 {
		logger.Info("session database migrated", "migrations", applied)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sessionManager,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}

	apiClient := client.New(cfg.APIURL)
	logger.Info("using portfolio API", "url", apiClient.BaseURL())

	router := handler.NewRouter(handler.RouterConfig{
		Client:         apiClient,
		Renderer:       renderer,
		SessionManager: sessionManager,
		Logger:         logger,
		SessionDB:      db,
		Version:        appVersion,
		Security:       middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
		CSRF:           middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr()),
		LoginLimiter:   middleware.NewRateLimiter(0.5, 5),
		Static:         static,
		AccessLog:      true,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return serve(srv, logger)
}

// serve runs srv until SIGINT or SIGTERM and then shuts it down gracefully.
func serve(srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
