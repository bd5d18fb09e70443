// Copyright (c) 2026 D42X. All rights reserved.

// Command api is the entry point for the D42X HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Build the cache tier (in-process memory or Redis).
//  5. Run database migrations (idempotent).
//  6. Build the protection pipeline services (token codec, body cipher).
//  7. Wire domain services and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/d42x/d42x-api/internal/account"
	"github.com/d42x/d42x-api/internal/api"
	"github.com/d42x/d42x-api/internal/category"
	"github.com/d42x/d42x-api/internal/meme"
	"github.com/d42x/d42x-api/internal/platform/cache"
	"github.com/d42x/d42x-api/internal/platform/config"
	"github.com/d42x/d42x-api/internal/platform/constants"
	"github.com/d42x/d42x-api/internal/platform/migration"
	pgstore "github.com/d42x/d42x-api/internal/platform/postgres"
	redisstore "github.com/d42x/d42x-api/internal/platform/redis"
	"github.com/d42x/d42x-api/internal/platform/sec"
	"github.com/d42x/d42x-api/internal/suggest"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[D42X] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("cache_backend", cfg.CacheBackend),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Cache Tier ─────────────────────────────────────────────────────
	// Two independent cache fronts: one for the category listing (a single
	// key), one for paginated meme listings. Each repository owns one.
	var categoryCache, memePageCache cache.Cache
	var checkCache func() error

	if cfg.CacheBackend == "redis" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		categoryCache = cache.NewRedis(rdb, "category", cfg.CacheTTL)
		memePageCache = cache.NewRedis(rdb, "meme", cfg.CacheTTL)
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	} else {
		categoryCache = cache.NewMemory(cfg.CacheCapacity, cfg.CacheTTL)
		memePageCache = cache.NewMemory(cfg.CacheCapacity, cfg.CacheTTL)
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Protection Pipeline Services ───────────────────────────────────
	tokenService := sec.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenIssuer, cfg.TokenAudience, cfg.TokenLifetime())

	bodyCipher, err := sec.NewBodyCipher([]byte(cfg.AESKey), []byte(cfg.AESIV))
	must(log, err, "initialize body cipher")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: checkCache,
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	memeRepository := meme.NewCachedRepository(meme.NewPostgresRepository(pool), memePageCache, log)
	categoryRepository := category.NewCachedRepository(category.NewPostgresRepository(pool), categoryCache, memeRepository, log)

	accountService := account.NewService(account.NewPostgresRepository(pool), tokenService, log)
	categoryService := category.NewService(categoryRepository, log)
	memeService := meme.NewService(memeRepository, categoryRepository, log)
	suggestService := suggest.NewService(suggest.NewPostgresRepository(pool), memeService, categoryService, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Account:   account.NewHandler(accountService),
		Category:  category.NewHandler(categoryService),
		Meme:      meme.NewHandler(memeService),
		MemeAdmin: meme.NewAdminHandler(memeService),
		Suggest:   suggest.NewHandler(suggestService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokenService, bodyCipher, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
