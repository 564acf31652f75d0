// Package main provides the entrypoint for the HaulRoute API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/haulroute/haulroute/internal/api"
	"github.com/haulroute/haulroute/internal/api/handler"
	"github.com/haulroute/haulroute/internal/api/middleware"
	"github.com/haulroute/haulroute/internal/config"
	geocoding "github.com/haulroute/haulroute/internal/geo/geoapify"
	"github.com/haulroute/haulroute/internal/provider/resilience"
	routeprovider "github.com/haulroute/haulroute/internal/routing/geoapify"
	"github.com/haulroute/haulroute/internal/telemetry"
	"github.com/haulroute/haulroute/internal/trip"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "haulroute-api"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting HaulRoute API")

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.GeoapifyAPIKey == "" {
		log.Warn().Msg("no Geoapify API key configured - requests must supply geoapify_token")
	}

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Shared resilient transports. One circuit per provider, shared across
	// requests so breaker state survives per-request simulator construction.
	registry := resilience.NewRegistry()

	geocodeClientCfg := resilience.DefaultClientConfig(geocoding.ProviderName)
	geocodeClientCfg.Timeout = cfg.GeocodeTimeout
	geocodeClientCfg.Registry = registry
	geocodeHTTP := resilience.NewClient(geocodeClientCfg)

	routeClientCfg := resilience.DefaultClientConfig(routeprovider.ProviderName)
	routeClientCfg.Timeout = cfg.RoutingTimeout
	routeClientCfg.Registry = registry
	routeHTTP := resilience.NewClient(routeClientCfg)

	simulatorFactory := func(apiKey string) handler.TripSimulator {
		key := apiKey
		if key == "" {
			key = cfg.GeoapifyAPIKey
		}

		geocoder := geocoding.NewClient(geocoding.ClientConfig{
			APIKey:     key,
			BaseURL:    cfg.GeoapifyBaseURL,
			HTTPClient: geocodeHTTP,
			Logger:     log,
		})
		router := routeprovider.NewClient(routeprovider.ClientConfig{
			APIKey:     key,
			BaseURL:    cfg.GeoapifyBaseURL,
			HTTPClient: routeHTTP,
			Logger:     log,
		})

		return trip.NewSimulator(trip.SimulatorConfig{
			Geocoder: geocoder,
			Router:   router,
			Logger:   log,
		})
	}

	mux := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		RequireTLS:       cfg.RequireTLS,
		Metrics:          metrics,
		SimulatorFactory: simulatorFactory,
		ProviderRegistry: registry,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("server stopped")
}
