// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/nrazizahmr/planner/backend/internal/config"
	"github.com/nrazizahmr/planner/backend/internal/extract"
	"github.com/nrazizahmr/planner/backend/internal/handler"
	"github.com/nrazizahmr/planner/backend/internal/middleware"
	"github.com/nrazizahmr/planner/backend/internal/planner"
	"github.com/nrazizahmr/planner/backend/internal/store"
	"github.com/nrazizahmr/planner/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage adapter --------------------------------------------------
	// Exactly one variant is active for the lifetime of the process.
	st, cleanup, err := buildStore(cfg)
	if err != nil {
		slog.Error("failed to set up storage", "backend", string(cfg.StorageBackend), "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("storage ready", "backend", string(cfg.StorageBackend))

	// --- Planner ----------------------------------------------------------
	// The collection is loaded wholesale once; an unreadable stored payload
	// is logged inside Load and the planner starts empty.
	pl := planner.New(st, logger)
	pl.Load(context.Background())

	// --- AI extraction ----------------------------------------------------
	var extractor handler.Extractor
	if cfg.AIAPIKey != "" {
		extractor = extract.NewClient(extract.Config{
			Endpoint: cfg.AIEndpoint,
			APIKey:   cfg.AIAPIKey,
			Model:    cfg.AIModel,
		})
	} else {
		slog.Info("AI extraction disabled, AI_API_KEY not set")
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer → CORS → body size limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srv := handler.NewServer(pl, pl, pl, extractor)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// buildStore constructs the configured persistence adapter. The returned
// cleanup func releases whatever connections the adapter holds.
func buildStore(cfg config.Config) (store.Store, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendLocal:
		rs, err := store.NewRedisStore(store.RedisConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { rs.Close() }, nil

	case config.BackendBlob:
		bs, err := store.NewBlobStore(cfg.BlobEndpoint)
		if err != nil {
			return nil, nil, err
		}
		return bs, func() {}, nil

	case config.BackendPostgres:
		if err := migrate(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}

		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(context.Background()); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store.NewPostgresStore(pool), pool.Close, nil
	}

	// Unreachable: config.Load rejects unknown backends.
	return nil, nil, errors.New("unknown storage backend")
}

// migrate applies any pending schema migrations from the embedded FS.
// goose needs database/sql, so this opens its own short-lived connection
// instead of reusing the pgx pool.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "source", res.Source.Path)
	}
	return nil
}
