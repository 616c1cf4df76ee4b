package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/wayfinder/internal/completion"
	"github.com/UnknownOlympus/wayfinder/internal/config"
	"github.com/UnknownOlympus/wayfinder/internal/geocoding"
	"github.com/UnknownOlympus/wayfinder/internal/location"
	"github.com/UnknownOlympus/wayfinder/internal/metrics"
	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/UnknownOlympus/wayfinder/internal/repository"
	"github.com/UnknownOlympus/wayfinder/internal/resolver"
	"github.com/UnknownOlympus/wayfinder/internal/routing"
	"github.com/UnknownOlympus/wayfinder/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// The geocode cache is optional; without a DSN the resolver always
	// asks the provider.
	var cache repository.Interface
	if cfg.DatabaseDSN != "" {
		pool, err := repository.NewDatabase(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer pool.Close()

		if err = repository.Schema(ctx, pool); err != nil {
			log.Fatalf("Failed to prepare geocode cache schema: %v", err)
		}
		cache = repository.NewRepository(pool, logger)
	}

	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder),
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.NominatimURL,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}

	completer, err := completion.NewProvider(completion.ProviderConfig{
		Type:      completion.ProviderType(cfg.Completer),
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.NominatimURL,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create completion provider: %v", err)
	}

	router, err := routing.NewRouter(routing.RouterConfig{
		Type:      routing.RouterType(cfg.Router),
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.OSRMURL,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create routing provider: %v", err)
	}

	logger.InfoContext(ctx, "Providers initialized",
		"geocoder", cfg.Geocoder, "completer", cfg.Completer, "router", cfg.Router)

	res := resolver.New(logger, completer, geoProvider, cache, appMetrics)
	sess := session.NewSession(logger, router, appMetrics, cfg.UnitSystem(),
		session.WithRouteErrorHandler(func(routeErr error) {
			logger.ErrorContext(ctx, "Route unavailable", "error", routeErr)
		}))

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the monitoring server in a goroutine to allow main to listen for signals.
	go startMonitoringServer(ctx, logger, reg, cfg.Port)

	if cfg.Origin != "" && cfg.Destination != "" {
		go runTrip(ctx, logger, cfg, res, sess)
	} else {
		logger.InfoContext(ctx, "No origin/destination configured, idling")
	}

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// runTrip resolves the configured origin and destination, requests a route
// and then replays the route geometry as simulated position fixes, logging
// the instruction list as tracking advances.
func runTrip(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.Config,
	res *resolver.Resolver,
	sess *session.Session,
) {
	origin, err := res.SubmitFreeText(ctx, cfg.Origin)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve origin", "error", err)
		return
	}

	dest, err := res.SubmitFreeText(ctx, cfg.Destination)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve destination", "error", err)
		return
	}

	// The session needs a known position before it can route.
	sess.SetAuthorization(ctx, location.AuthWhenInUse)
	sess.OnPositionUpdate(ctx, models.Position{Coordinate: *origin, Timestamp: time.Now()})
	sess.SetDestination(ctx, *dest)

	geometry := waitForRoute(ctx, sess)
	if geometry == nil {
		return
	}

	for _, step := range sess.Snapshot().Steps {
		logger.InfoContext(ctx, "Route step", "instruction", step.Instruction, "distance", step.Distance)
	}

	sim := location.NewSimulator(geometry, cfg.SimulatorInterval, logger)
	go sim.Run(ctx)
	sess.Run(ctx, sim)

	snap := sess.Snapshot()
	logger.InfoContext(ctx, "Trip finished", "current_step", snap.CurrentStep, "state", snap.State.String())
}

// waitForRoute polls until the route fetch resolves or the context ends.
func waitForRoute(ctx context.Context, sess *session.Session) []models.Coordinate {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if geometry := sess.RouteGeometry(); geometry != nil {
				return geometry
			}
		}
	}
}

// startMonitoringServer starts an HTTP server that provides health check and
// metrics endpoints. It listens on the specified port and logs the server's
// status and any errors encountered.
func startMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte("OK")); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)
		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return logger
}
