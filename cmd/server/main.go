// Package main is the entry point of the study plan API server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/studyplan/internal/config"
	"github.com/phrazzld/studyplan/internal/platform/logger"
	"github.com/phrazzld/studyplan/internal/platform/postgres"
)

func main() {
	migrate := flag.String("migrate", "", "run a migration command (up, down, status, version, reset) and exit")
	autoMigrate := flag.Bool("auto-migrate", false, "apply pending migrations before serving")
	flag.Parse()

	if err := run(context.Background(), *migrate, *autoMigrate); err != nil {
		log.Printf("studyplan server: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, opens the database and either runs a migration
// command or serves until interrupted.
func run(ctx context.Context, migrateCmd string, autoMigrate bool) error {
	cfg, err := config.Load()
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
		slog.Bool("redis_enabled", cfg.Redis.Addr != ""))

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDB(db, l)
		return postgres.Migrate(db, migrateCmd, l)
	}
	if autoMigrate {
		if err := postgres.Migrate(db, "up", l); err != nil {
			closeDB(db, l)
			return err
		}
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		closeDB(db, l)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func closeDB(db *sql.DB, l *slog.Logger) {
	if err := db.Close(); err != nil {
		l.Error("error closing database connection", slog.String("error", err.Error()))
	}
}
