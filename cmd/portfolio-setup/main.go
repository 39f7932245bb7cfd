// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command portfolio-setup creates the first admin account and optionally
// fills the portfolio with sample content.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sohoj8245-gif/portfolio/internal/client"
	"github.com/sohoj8245-gif/portfolio/internal/config"
	"github.com/sohoj8245-gif/portfolio/internal/kv"
	"github.com/sohoj8245-gif/portfolio/internal/logging"
	"github.com/sohoj8245-gif/portfolio/internal/session"
	"github.com/sohoj8245-gif/portfolio/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// options are the command line flags.
type options struct {
	username string
	password string
	seed     bool
	logout   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.username, "username", "admin", "Admin username")
	flag.StringVar(&opts.password, "password", "admin123", "Admin password")
	flag.BoolVar(&opts.seed, "seed", false, "Write sample hero, about, skills, projects, and contact")
	flag.BoolVar(&opts.logout, "logout", false, "Forget the stored admin token and exit")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portfolio-setup - create the admin account and sample content\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_API_URL     Portfolio API root (default: http://localhost:8001)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_STATE_FILE  Where the admin token is kept (default: ./data/setup-state.json)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("portfolio-setup %s\n", info)
		os.Exit(0)
	}

	if err := run(context.Background(), opts); err != nil {
		slog.Error("setup failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	_ = godotenv.Load()

	cfg, err := config.LoadSetup()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	state, err := kv.OpenFile(cfg.StateFile)
	if err != nil {
		return err
	}

	return setup(ctx, client.New(cfg.APIURL), state, opts, logger)
}

// setup runs the bootstrap steps against c, keeping the admin token in state.
func setup(ctx context.Context, c *client.Client, state kv.Store, opts options, logger *slog.Logger) error {
	sess := session.NewStore(state, c, logger)

	if opts.logout {
		if err := sess.Logout(); err != nil {
			return err
		}
		logger.Info("stored admin token removed")
		return nil
	}

	if err := createAdmin(ctx, c, opts, logger); err != nil {
		return err
	}

	if !opts.seed {
		return nil
	}

	if !sess.IsAuthenticated() {
		if res := sess.Login(ctx, opts.username, opts.password); !res.Success {
			return fmt.Errorf("could not log in: %s", res.Error)
		}
	}

	res, err := seed(ctx, c.WithTokens(sess))
	if client.IsUnauthorized(err) {
		// The stored token is stale; log in again and retry once.
		logger.Info("stored admin token rejected, logging in again")
		if lerr := sess.Logout(); lerr != nil {
			return lerr
		}
		if login := sess.Login(ctx, opts.username, opts.password); !login.Success {
			return fmt.Errorf("could not log in: %s", login.Error)
		}
		res, err = seed(ctx, c.WithTokens(sess))
	}
	if err != nil {
		return fmt.Errorf("seeding sample data: %w", err)
	}

	logger.Info("sample portfolio data written", "skills", res.Skills, "projects", res.Projects)
	return nil
}

// createAdmin creates the admin account. An existing admin is reported
// and is not an error.
func createAdmin(ctx context.Context, c *client.Client, opts options, logger *slog.Logger) error {
	err := c.SetupAdmin(ctx, opts.username, opts.password)
	var apiErr *client.APIError
	switch {
	case err == nil:
		logger.Info("admin created", "username", opts.username)
		logger.Warn("change the admin password after the first login")
		return nil
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest:
		logger.Info("admin setup skipped", "reason", apiErr.Detail)
		return nil
	default:
		return fmt.Errorf("creating admin: %w", err)
	}
}
