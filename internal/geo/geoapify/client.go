// Package geoapify provides a client for the Geoapify geocoding API.
package geoapify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/haulroute/haulroute/internal/geo"
	"github.com/haulroute/haulroute/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "geoapify-geocoding"

	// DefaultBaseURL is the Geoapify API base URL.
	DefaultBaseURL = "https://api.geoapify.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Geoapify geocoding client.
type ClientConfig struct {
	// APIKey is the Geoapify API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to the Geoapify API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Geoapify geocoding API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Geoapify geocoding client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Geocode resolves a free-text address to a coordinate.
func (c *Client) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	q := url.Values{}
	q.Set("text", address)
	q.Set("apiKey", c.apiKey)

	reqURL := fmt.Sprintf("%s/v1/geocode/search?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("address", address).
		Msg("geocoding address via Geoapify")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Coordinate{}, &geo.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach geocoding provider",
			Err:      geo.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, &geo.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  fmt.Sprintf("geocoding provider returned status %d", resp.StatusCode),
			Err:      geo.ErrProviderUnavailable,
		}
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return geo.Coordinate{}, &geo.Error{
			Provider: ProviderName,
			Code:     "DECODE_FAILED",
			Message:  "failed to decode geocoding response",
			Err:      geo.ErrMalformedResponse,
		}
	}

	if len(decoded.Features) == 0 {
		return geo.Coordinate{}, &geo.Error{
			Provider: ProviderName,
			Code:     "NO_RESULTS",
			Message:  fmt.Sprintf("no results found for address: %s", address),
			Err:      geo.ErrNoResults,
		}
	}

	// Geoapify returns [lon, lat] (GeoJSON order).
	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return geo.Coordinate{}, &geo.Error{
			Provider: ProviderName,
			Code:     "BAD_COORDINATES",
			Message:  fmt.Sprintf("invalid coordinate format for address: %s", address),
			Err:      geo.ErrMalformedResponse,
		}
	}

	result := geo.Coordinate{Lat: coords[1], Lon: coords[0]}

	c.logger.Debug().
		Str("address", address).
		Float64("lat", result.Lat).
		Float64("lon", result.Lon).
		Msg("geocoded address")

	return result, nil
}
