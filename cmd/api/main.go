package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/geofences/internal/adapters/http"
	natsadapter "github.com/samirrijal/geofences/internal/adapters/nats"
	"github.com/samirrijal/geofences/internal/adapters/postgres"
	"github.com/samirrijal/geofences/internal/adapters/valkey"
	"github.com/samirrijal/geofences/internal/core/ports"
	"github.com/samirrijal/geofences/internal/core/usecases"
	"github.com/samirrijal/geofences/internal/pkg/config"
	"github.com/samirrijal/geofences/internal/pkg/logging"
	"github.com/samirrijal/geofences/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("geofences-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if cfg.Database.InitSchema {
		err := postgres.ApplySchema(ctx, db, cfg.Database.SchemaFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("schema file missing, skipping init", "path", cfg.Database.SchemaFile)
		case err != nil:
			log.Fatalf("init schema: %v", err)
		default:
			slog.Info("schema applied", "path", cfg.Database.SchemaFile)
		}
	}

	// Cache and events are optional; the service stays up without them.
	var (
		cache     *valkey.Cache
		publisher *natsadapter.Publisher
		cachePort ports.CacheService
		eventPort ports.EventPublisher
	)

	if cfg.Valkey.Enabled {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
			cache = nil
		} else {
			defer cache.Close()
			cachePort = cache
		}
	}

	if cfg.NATS.Enabled {
		publisher, err = natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
			publisher = nil
		} else {
			defer publisher.Close()
			eventPort = publisher
		}
	}

	geofenceSvc := usecases.NewGeofenceService(postgres.NewGeofenceRepo(db), cachePort, eventPort).
		WithListTTL(cfg.Valkey.ListTTL)

	deps := &http.Dependencies{
		Geofences:      geofenceSvc,
		DB:             db,
		Events:         publisher,
		Cache:          cache,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		AppName:      "Geofence Store",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := cfg.Server.Addr()
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
