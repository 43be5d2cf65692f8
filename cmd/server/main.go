// Package main implements the entry point for the Astral API server, which
// computes natal charts, transits, compatibility and daily horoscopes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/astral-api/internal/config"
	"github.com/phrazzld/astral-api/internal/platform/logger"
	"github.com/phrazzld/astral-api/internal/platform/postgres"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		migrate    = flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	)
	flag.Parse()

	if err := run(*configPath, *migrate); err != nil {
		log.Fatalf("astral-api: %v", err)
	}
}

func run(configPath, migrateCmd string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("database", cfg.Database.Enabled()),
		slog.Bool("redis", cfg.Cache.RedisAddr != ""))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrateCmd != "" {
		if !cfg.Database.Enabled() {
			return fmt.Errorf("migrations need database.url to be set")
		}
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return postgres.Migrate(db, migrateCmd, l)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
