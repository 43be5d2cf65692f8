package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver
	"github.com/prometheus/client_golang/prometheus"

	"github.com/phrazzld/astral-api/internal/config"
	"github.com/phrazzld/astral-api/internal/domain/astro"
	"github.com/phrazzld/astral-api/internal/platform/cache"
	"github.com/phrazzld/astral-api/internal/platform/memstore"
	"github.com/phrazzld/astral-api/internal/platform/metrics"
	"github.com/phrazzld/astral-api/internal/platform/postgres"
	"github.com/phrazzld/astral-api/internal/service"
	"github.com/phrazzld/astral-api/internal/store"
)

// application holds the shared dependencies and releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Nil when the service runs on in-memory stores
	db *sql.DB

	chartCache cache.ChartCache
	registry   prometheus.Registerer
	gatherer   prometheus.Gatherer

	chartService   service.ChartService
	profileService service.ProfileService
}

// newApplication wires the application against the default Prometheus
// registry.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	return newApplicationWithRegistry(ctx, cfg, logger, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

func newApplicationWithRegistry(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: reg,
		gatherer: gatherer,
	}

	var (
		profiles store.ProfileStore
		charts   store.ChartStore
		txdb     store.TxBeginner
	)
	if cfg.Database.Enabled() {
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		app.db = db

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(db, "up", logger); err != nil {
				app.cleanup()
				return nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}

		profiles = postgres.NewPostgresProfileStore(db, logger)
		charts = postgres.NewPostgresChartStore(db, logger)
		txdb = db
		logger.Info("using postgres stores")
	} else {
		mem := memstore.New()
		profiles = mem.Profiles()
		charts = mem.Charts()
		logger.Info("database.url not set, using in-memory stores")
	}

	chartCache, err := newChartCache(ctx, cfg.Cache, logger)
	if err != nil {
		app.cleanup()
		return nil, err
	}
	app.chartCache = chartCache

	parallel := cfg.Engine.ParallelBodies
	params, err := astro.NewParams(astro.ParamsConfig{
		HouseSystem:         cfg.Engine.HouseSystem,
		IncludeMinorAspects: cfg.Engine.IncludeMinorAspects,
		ParallelBodies:      &parallel,
	})
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	app.chartService, err = service.NewChartService(
		astro.New(params),
		chartCache,
		metrics.New(reg),
		service.ChartServiceConfig{
			CacheTTL:     cfg.Cache.TTL(),
			BatchWorkers: cfg.Engine.BatchWorkers,
		},
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create chart service: %w", err)
	}

	app.profileService, err = service.NewProfileService(profiles, charts, txdb, app.chartService, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	logger.Info("application initialized",
		slog.String("cache", chartCache.Kind()),
		slog.String("house_system", string(params.HouseSystem)))
	return app, nil
}

// openDatabase opens and pings the PostgreSQL pool.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// newChartCache returns a Redis cache when one is configured and an
// in-process LRU otherwise.
func newChartCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (cache.ChartCache, error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(cfg.MaxEntries), nil
	}
	redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return redisCache, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the cache and database connections.
func (app *application) cleanup() {
	if app.chartCache != nil {
		if err := app.chartCache.Close(); err != nil {
			app.logger.Error("error closing chart cache", slog.Any("error", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.Any("error", err))
		}
	}
	app.logger.Info("application shutdown completed")
}
