// Package main is the entry point for the trip journal API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/tripjournal/internal/app"
	"github.com/pkordes/tripjournal/internal/config"
	"github.com/pkordes/tripjournal/internal/handler"
	"github.com/pkordes/tripjournal/internal/middleware"
	"github.com/pkordes/tripjournal/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Storage ----------------------------------------------------------
	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	services := app.New(repos, service.WithLogger(logger))

	// --- Router -----------------------------------------------------------
	// RequestID -> RealIP -> metrics -> SlogLogger -> Recoverer -> CORS -> body limit.
	metrics := middleware.NewMetrics()
	api := handler.NewServer(handler.Deps{
		Trips:    services.Trips,
		Diaries:  services.Diaries,
		Expenses: services.Expenses,
		Budgets:  services.Budgets,
		Views:    services.Views,
		Auth:     services.Auth,
		Export:   services.Export,
		Log:      logger,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(metrics.Middleware)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Handle("/metrics", metrics.Handler())
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore builds the repos for cfg.Backend. For postgres it applies
// pending migrations first. Fixtures are loaded when SeedFixtures is set.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (app.Repos, func(), error) {
	if cfg.Backend == config.BackendMemory {
		log.Info("using in-memory store", "seeded", cfg.SeedFixtures)
		return app.NewMemoryRepos(cfg.SeedFixtures), func() {}, nil
	}

	if err := app.MigrateUp(ctx, cfg.DatabaseURL, log); err != nil {
		return app.Repos{}, nil, err
	}
	pool, err := app.OpenPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return app.Repos{}, nil, err
	}
	log.Info("database connection established")

	repos := app.NewPostgresRepos(pool)
	if cfg.SeedFixtures {
		wrote, err := app.SeedPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return app.Repos{}, nil, err
		}
		log.Info("fixtures", "seeded", wrote)
	}
	return repos, pool.Close, nil
}
