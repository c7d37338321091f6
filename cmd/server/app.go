package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/studyplan/internal/config"
	"github.com/phrazzld/studyplan/internal/domain/planner"
	"github.com/phrazzld/studyplan/internal/platform/postgres"
	"github.com/phrazzld/studyplan/internal/platform/rediscache"
	"github.com/phrazzld/studyplan/internal/service"
	"github.com/phrazzld/studyplan/internal/service/auth"
	"github.com/phrazzld/studyplan/internal/store"
)

// application holds the shared dependencies and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	subjectStore store.SubjectStore
	planStore    store.PlanStore
	redis        interface{ Close() error }

	jwtService      auth.JWTService
	scheduleService service.ScheduleService
}

// newApplication wires stores, cache and services on top of an open
// database connection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.subjectStore = postgres.NewPostgresSubjectStore(db, logger)
	app.planStore = postgres.NewPostgresPlanStore(db, logger)

	if cfg.Redis.Addr != "" {
		client, err := rediscache.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.redis = client
		ttl := time.Duration(cfg.Redis.PlanTTLMinutes) * time.Minute
		app.planStore = rediscache.NewPlanStore(app.planStore, client, ttl, logger)
		logger.Info("plan cache enabled", slog.Duration("ttl", ttl))
	}

	params, err := cfg.Planner.Params()
	if err != nil {
		app.closeRedis()
		return nil, fmt.Errorf("invalid planner configuration: %w", err)
	}

	app.scheduleService, err = service.NewScheduleService(
		db,
		app.subjectStore,
		app.planStore,
		planner.NewServiceWithParams(params),
		logger,
	)
	if err != nil {
		app.closeRedis()
		return nil, fmt.Errorf("failed to create schedule service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the cache and database connections.
func (app *application) cleanup() {
	app.closeRedis()
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}

func (app *application) closeRedis() {
	if app.redis == nil {
		return
	}
	if err := app.redis.Close(); err != nil {
		app.logger.Error("error closing redis client", slog.String("error", err.Error()))
	}
	app.redis = nil
}
