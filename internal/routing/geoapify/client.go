// Package geoapify provides a client for the Geoapify routing API.
package geoapify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/haulroute/haulroute/internal/provider/resilience"
	"github.com/haulroute/haulroute/internal/routing"
)

const (
	// ProviderName identifies this routing provider.
	ProviderName = "geoapify-routing"

	// DefaultBaseURL is the Geoapify API base URL.
	DefaultBaseURL = "https://api.geoapify.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 15 * time.Second

	// metersPerMile converts provider meters to statute miles.
	metersPerMile = 0.000621371
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Geoapify routing client.
type ClientConfig struct {
	// APIKey is the Geoapify API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to the Geoapify API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 15s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Geoapify routing API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Geoapify routing client.
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

// GetRoute retrieves a driving route through the given waypoints.
func (c *Client) GetRoute(ctx context.Context, req routing.RouteRequest) (*routing.Route, error) {
	if len(req.Waypoints) < 2 {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "TOO_FEW_WAYPOINTS",
			Message:  "at least two waypoints are required",
			Err:      routing.ErrInvalidCoordinates,
		}
	}
	for _, wp := range req.Waypoints {
		if err := wp.Validate(); err != nil {
			return nil, &routing.Error{
				Provider: ProviderName,
				Code:     "INVALID_WAYPOINT",
				Message:  "invalid waypoint coordinates",
				Err:      routing.ErrInvalidCoordinates,
			}
		}
	}

	mode := req.Mode
	if mode == "" {
		mode = routing.ModeDrive
	}

	// Geoapify routing expects waypoints as lat,lon pairs joined by "|".
	parts := make([]string, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		parts = append(parts, fmt.Sprintf("%f,%f", wp.Lat, wp.Lon))
	}

	q := url.Values{}
	q.Set("waypoints", strings.Join(parts, "|"))
	q.Set("mode", string(mode))
	q.Set("apiKey", c.apiKey)

	reqURL := fmt.Sprintf("%s/v1/routing?%s", c.baseURL, q.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json, application/geo+json")

	c.logger.Debug().
		Str("mode", string(mode)).
		Int("waypoints", len(req.Waypoints)).
		Msg("requesting route from Geoapify")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach routing provider",
			Err:      routing.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorStatus(resp.StatusCode)
	}

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "DECODE_FAILED",
			Message:  "failed to decode routing response",
			Err:      routing.ErrMalformedResponse,
		}
	}

	// Geoapify reports some failures inside a 200 body.
	if decoded.Error != "" || decoded.StatusCode != 0 {
		msg := decoded.Message
		if msg == "" {
			msg = "unknown routing API error"
		}
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "API_ERROR",
			Message:  msg,
			Err:      routing.ErrNoRouteFound,
		}
	}

	if len(decoded.Features) == 0 {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "no route found for the given locations",
			Err:      routing.ErrNoRouteFound,
		}
	}

	feature := decoded.Features[0]
	if feature.Properties.Distance == nil || feature.Properties.Time == nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "MISSING_FIELDS",
			Message:  "route response missing distance or time",
			Err:      routing.ErrMalformedResponse,
		}
	}

	route := &routing.Route{
		Geometry:      feature.Geometry,
		DistanceMiles: *feature.Properties.Distance * metersPerMile,
		DurationHours: *feature.Properties.Time / 3600,
		Provider:      ProviderName,
		FetchedAt:     time.Now(),
	}

	c.logger.Debug().
		Float64("distance_miles", route.DistanceMiles).
		Float64("duration_hours", route.DurationHours).
		Msg("received route from Geoapify")

	return route, nil
}

// handleErrorStatus maps HTTP error statuses to domain errors.
func (c *Client) handleErrorStatus(statusCode int) error {
	switch {
	case statusCode == http.StatusNotFound:
		return &routing.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "no route found between the given points",
			Err:      routing.ErrNoRouteFound,
		}
	case statusCode == http.StatusBadRequest:
		return &routing.Error{
			Provider: ProviderName,
			Code:     "BAD_REQUEST",
			Message:  "routing provider rejected the request",
			Err:      routing.ErrInvalidCoordinates,
		}
	case statusCode >= 500:
		return &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("SERVER_%d", statusCode),
			Message:  "routing provider is temporarily unavailable",
			Err:      routing.ErrProviderUnavailable,
		}
	default:
		return &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", statusCode),
			Message:  fmt.Sprintf("routing provider returned status %d", statusCode),
			Err:      routing.ErrProviderUnavailable,
		}
	}
}
