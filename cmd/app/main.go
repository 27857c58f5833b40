package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/di"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/logger"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/metrics"

	"github.com/rs/zerolog/log"
)

const (
	defaultGracePeriod = 5 * time.Second
	readHeaderTimeout  = 5 * time.Second
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	app, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsServer := serveMetrics(cfg)

	if err := app.Broadcaster.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start cache broadcast")
	}

	if err := app.Console.Serve(ctx); err != nil {
		log.Error().Err(err).Msg("Console stopped with error")
	}

	shutdown(app, metricsServer, gracePeriod(cfg))
}

// serveMetrics exposes Prometheus metrics when enabled. It returns nil otherwise.
func serveMetrics(cfg *config.Config) *http.Server {
	metrics.Register()

	if !cfg.Metrics.Enable {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", cfg.Metrics.Port),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Metrics.Port).Msg("Starting up metrics server.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	return server
}

func gracePeriod(cfg *config.Config) time.Duration {
	if cfg.Server.Shutdown.GracePeriodSeconds <= 0 {
		return defaultGracePeriod
	}

	return time.Duration(cfg.Server.Shutdown.GracePeriodSeconds) * time.Second
}

// shutdown releases every resource of app within the grace period.
func shutdown(app *di.App, metricsServer *http.Server, grace time.Duration) {
	log.Info().Dur("grace_period", grace).Msg("Shutting down.")

	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to stop metrics server")
		}
	}

	if err := app.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis client")
		}
	}

	if err := app.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down tracer provider")
	}

	if err := app.DB.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}

	log.Info().Msg("Shutdown complete.")
}
