// Package config loads application configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. Everything the service needs
// from the environment is read here once; the rest of the code receives
// explicit values.
type Config struct {
	// Port is the HTTP listen port.
	Port string `mapstructure:"APP_PORT"`

	// Env is the deployment environment (development, staging, production).
	Env string `mapstructure:"APP_ENV"`

	// GeoapifyAPIKey is the default Geoapify credential. Requests may
	// override it per-call.
	GeoapifyAPIKey string `mapstructure:"GEOAPIFY_API_KEY"`

	// GeoapifyBaseURL overrides the Geoapify API base URL (tests, proxies).
	GeoapifyBaseURL string `mapstructure:"GEOAPIFY_BASE_URL"`

	// GeocodeTimeout is the per-call timeout for geocoding requests.
	GeocodeTimeout time.Duration `mapstructure:"GEOCODE_TIMEOUT"`

	// RoutingTimeout is the per-call timeout for routing requests.
	RoutingTimeout time.Duration `mapstructure:"ROUTING_TIMEOUT"`

	// OTELEnabled toggles OpenTelemetry export.
	OTELEnabled bool `mapstructure:"OTEL_ENABLED"`

	// OTLPEndpoint is the OTLP collector endpoint.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// RequireTLS enforces HTTPS via the X-Forwarded-Proto header.
	RequireTLS bool `mapstructure:"REQUIRE_TLS"`
}

// Load reads configuration from the environment. A .env file in path is
// merged in when present; real environment variables always win.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("GEOCODE_TIMEOUT", 10*time.Second)
	v.SetDefault("ROUTING_TIMEOUT", 15*time.Second)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// AutomaticEnv alone does not surface env vars through Unmarshal;
	// binding each key explicitly does.
	for _, key := range []string{
		"APP_PORT", "APP_ENV",
		"GEOAPIFY_API_KEY", "GEOAPIFY_BASE_URL",
		"GEOCODE_TIMEOUT", "ROUTING_TIMEOUT",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"REQUIRE_TLS",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
