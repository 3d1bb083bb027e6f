// Package main is the entrypoint for the OracleBall API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/oracleball/oracleball/internal/api"
	"github.com/oracleball/oracleball/internal/api/handler"
	mw "github.com/oracleball/oracleball/internal/api/middleware"
	"github.com/oracleball/oracleball/internal/api/response"
	"github.com/oracleball/oracleball/internal/cache"
	"github.com/oracleball/oracleball/internal/config"
	"github.com/oracleball/oracleball/internal/fixtures"
	"github.com/oracleball/oracleball/internal/oracle"
	"github.com/oracleball/oracleball/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env,
		"analysis_delay", cfg.Oracle.AnalysisDelay)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Run migrations (includes the seed match list)
	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 4. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 5. Create store and oracle session
	pgStore := store.NewPostgresStore(pool)

	engine := oracle.NewEngine(cfg.Oracle, nil)
	session := oracle.NewSession(pgStore, redisCache, engine,
		oracle.NewSystemClock(), cfg.Oracle.AnalysisDelay)
	defer session.Close()

	// 6. Build router with dependencies
	auth := mw.NewAuth(pgStore)
	rateLimit := mw.NewRateLimit(redisCache, cfg.Server.RateLimitPerMin)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	deps := api.Dependencies{
		Auth:      auth,
		RateLimit: rateLimit,
		CORS:      corsHandler,

		HealthHandler: healthHandler(pgStore, redisCache),

		ListMatchesHandler:  handler.NewListMatchesHandler(pgStore),
		OracleStatusHandler: handler.NewOracleStatusHandler(session),
		PredictHandler:      handler.NewPredictHandler(session),

		CreateKeyHandler: handler.NewCreateKeyHandler(pgStore),
		ListKeysHandler:  handler.NewListKeysHandler(pgStore),
		RevokeKeyHandler: handler.NewRevokeKeyHandler(pgStore),
	}

	// The fixtures feed is optional; without a base URL the sync
	// endpoint answers 501 and the seeded matches are all there is.
	if cfg.Fixtures.BaseURL != "" {
		feedClient := fixtures.NewHTTPClient(
			cfg.Fixtures.BaseURL, cfg.Fixtures.APIToken, cfg.Fixtures.Timeout)
		syncService := fixtures.NewService(feedClient, pgStore, redisCache)
		deps.SyncFixturesHandler = handler.NewSyncFixturesHandler(syncService)
		slog.Info("fixtures feed configured", "base_url", cfg.Fixtures.BaseURL)
	}

	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Cancel any in-flight analysis before draining, so the timer
	// callback cannot fire into a torn-down stack.
	session.Close()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler checks database and cache connectivity.
func healthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["database"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		degraded := checks["database"] != "ok" || checks["cache"] != "ok"
		if degraded {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
