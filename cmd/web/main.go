// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the mangacal site: the release calendar,
// the licensing tracker and their JSON/ICS feeds.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Set up tracing (no-op unless OTEL_ENABLED and OTEL_ENDPOINT are set).
//  4. Connect to PostgreSQL (read-only pgxpool).
//  5. Connect to Redis.
//  6. Run database migrations (opt-in, local databases only).
//  7. Create Google Sheets and Calendar clients.
//  8. Load the publisher calendar catalog.
//  9. Wire services and handlers.
//  10. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/mangacal/data"
	"github.com/taibuivan/mangacal/internal/api"
	"github.com/taibuivan/mangacal/internal/core/announcement"
	"github.com/taibuivan/mangacal/internal/core/calendar"
	"github.com/taibuivan/mangacal/internal/core/license"
	"github.com/taibuivan/mangacal/internal/core/reference"
	"github.com/taibuivan/mangacal/internal/core/release"
	"github.com/taibuivan/mangacal/internal/core/series"
	"github.com/taibuivan/mangacal/internal/platform/cache"
	"github.com/taibuivan/mangacal/internal/platform/config"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/google"
	"github.com/taibuivan/mangacal/internal/platform/migration"
	"github.com/taibuivan/mangacal/internal/platform/otel"
	pgstore "github.com/taibuivan/mangacal/internal/platform/postgres"
	redisstore "github.com/taibuivan/mangacal/internal/platform/redis"
	"github.com/taibuivan/mangacal/internal/platform/sec"
	"github.com/taibuivan/mangacal/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("revalidate_enabled", cfg.RevalidateEnabled()),
	)

	// Root context for startup. A 30s deadline surfaces misconfiguration
	// instead of hanging on an unreachable dependency.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Tracing ────────────────────────────────────────────────────────
	shutdownTracing, err := otel.Setup(startupCtx, otel.Settings{
		Enabled:     cfg.OtelEnabled,
		Endpoint:    cfg.OtelEndpoint,
		ServiceName: constants.AppName,
		Version:     constants.AppVersion,
	})
	must(log, err, "set up tracing")
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if terr := shutdownTracing(flushCtx); terr != nil {
			log.Error("tracing shutdown error", slog.Any("error", terr))
		}
	}()

	// ── 4. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, pgstore.Config{DSN: cfg.DatabaseURL, ReadOnly: true}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 5. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 6. Migrations ─────────────────────────────────────────────────────
	if cfg.RunMigrations {
		source := migration.Source{Path: cfg.MigrationPath, Embedded: data.Migrations()}
		must(log, migration.RunUp(cfg.DatabaseURL, source, log), "run migrations")
	}

	// ── 7. Google APIs ────────────────────────────────────────────────────
	sheets, err := google.NewSheetsReader(startupCtx, cfg.GoogleAPIKey)
	must(log, err, "create sheets client")

	events, err := google.NewCalendarReader(startupCtx, cfg.GoogleAPIKey)
	must(log, err, "create calendar client")

	// ── 8. Calendar catalog ───────────────────────────────────────────────
	catalog, err := calendar.LoadCatalog(cfg.CatalogPath)
	must(log, err, "load calendar catalog")

	log.Info("catalog_loaded", slog.Int("publishers", len(catalog.Publishers)))

	// ── 9. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 10. Domain Wiring ─────────────────────────────────────────────────
	store := cache.NewRedisStore(rdb)

	referenceService := reference.NewService(reference.NewPostgresRepository(pool), store)
	releaseService := release.NewService(release.NewPostgresRepository(pool), referenceService, store, cfg.SiteURL)
	seriesService := series.NewService(series.NewPostgresRepository(pool), store)

	pages, err := web.NewHandler(web.Services{
		Calendar:   calendar.NewService(events, catalog, store),
		Banner:     announcement.NewService(sheets, cfg.SheetID, store),
		Series:     seriesService,
		References: referenceService,
		Sheet:      license.NewService(sheets, cfg.SheetID, store),
	}, web.Options{
		SiteURL:    cfg.SiteURL,
		CDNBaseURL: cfg.CDNBaseURL,
	})
	must(log, err, "parse page templates")

	tokens := sec.NewTokenService(cfg.RevalidateSecret)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Release:   release.NewHandler(releaseService),
		Series:    series.NewHandler(seriesService),
		Reference: reference.NewHandler(referenceService),
		Pages:     pages,
	}
	if cfg.RevalidateEnabled() {
		handlers.Revalidate = api.NewRevalidateHandler(store)
	}

	// ── 11. HTTP Server ───────────────────────────────────────────────────
	serverCtx, stopServer := context.WithCancel(context.Background())
	defer stopServer()

	server := api.NewServer(serverCtx, cfg, log, tokens, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger every entry of which carries the app name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
