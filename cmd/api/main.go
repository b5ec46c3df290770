// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Linkshelf HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env in development).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when configured.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/linkshelf/internal/ai"
	"github.com/taibuivan/linkshelf/internal/api"
	"github.com/taibuivan/linkshelf/internal/auth"
	"github.com/taibuivan/linkshelf/internal/category"
	"github.com/taibuivan/linkshelf/internal/platform/config"
	"github.com/taibuivan/linkshelf/internal/platform/constants"
	"github.com/taibuivan/linkshelf/internal/platform/migration"
	pgstore "github.com/taibuivan/linkshelf/internal/platform/postgres"
	redisstore "github.com/taibuivan/linkshelf/internal/platform/redis"
	"github.com/taibuivan/linkshelf/internal/platform/sec"
	"github.com/taibuivan/linkshelf/internal/site"
	"github.com/taibuivan/linkshelf/internal/upload"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("dotenv_load_failed", slog.Any("error", err))
	}

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
		slog.Bool("redis", cfg.RedisURL != ""),
		slog.Bool("ai", cfg.AIAPIKey != ""),
		slog.Bool("storage", cfg.StorageEnabled()),
	)

	// Background work (rate limiter sweeper) stops with this context.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pgstore.Close(pool, log)

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, log), "run migrations")

	// ── 6. Error log sink ─────────────────────────────────────────────────
	var errorSink *slog.Logger
	if cfg.ErrorLogFile != "" {
		file, err := os.OpenFile(cfg.ErrorLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		must(log, err, "open error log file")
		defer file.Close()
		errorSink = slog.New(slog.NewJSONHandler(file, nil)).With(slog.String("app", constants.AppName))
	}

	// ── 7. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret(),
		AccessTTL:     cfg.JWTAccessTTL,
		RefreshTTL:    cfg.JWTRefreshTTL,
		Issuer:        constants.AuthIssuer,
	})
	must(log, err, "initialize token service")

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(auth.NewPostgresUserRepository(pool), tokens, sec.Role(cfg.SignupDefaultRole), log)
	categoryService := category.NewService(category.NewPostgresRepository(pool), log)
	siteService := site.NewService(site.NewPostgresRepository(pool), log)
	aiService := ai.NewService(newProvider(cfg), newQuota(cfg, rdb), log)

	var storage upload.Storage
	if cfg.StorageEnabled() {
		s3Storage, err := upload.NewS3Storage(startupCtx, upload.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		})
		must(log, err, "initialize object storage")
		storage = s3Storage
	}

	// ── 9. Health handlers (wired with real dependency checkers) ──────────
	healthDeps := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		AIConfigured:  aiService.Configured,
	}
	if rdb != nil {
		healthDeps.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, !cfg.IsDevelopment()),
		Category:  category.NewHandler(categoryService),
		Site:      site.NewHandler(siteService),
		AI:        ai.NewHandler(aiService),
		Upload:    upload.NewHandler(storage, cfg.UploadMaxBytes),
	}

	server := api.NewServer(appCtx, cfg, log, errorSink, api.Security{Verifier: tokens, Resolver: authService}, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// newProvider returns nil when no credential is configured, which the AI
// service reports as a configuration error on use.
func newProvider(cfg *config.Config) ai.Provider {
	if cfg.AIAPIKey == "" {
		return nil
	}
	return ai.NewOpenAIProvider(ai.ProviderConfig{
		APIKey:      cfg.AIAPIKey,
		BaseURL:     cfg.AIBaseURL,
		Model:       cfg.AIModel,
		Temperature: cfg.AITemperature,
		MaxTokens:   cfg.AIMaxTokens,
		TopP:        cfg.AITopP,
		Timeout:     cfg.AITimeout,
	})
}

func newQuota(cfg *config.Config, rdb *goredis.Client) ai.Quota {
	if rdb == nil || cfg.AIHourlyQuota <= 0 {
		return nil
	}
	return ai.NewRedisQuota(rdb, cfg.AIHourlyQuota)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
