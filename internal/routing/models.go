// Package routing provides driving route computation between coordinates.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/haulroute/haulroute/internal/geo"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the routing provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates no valid route exists between the given points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrMalformedResponse indicates the provider response is missing expected fields.
	ErrMalformedResponse = errors.New("malformed routing response")
	// ErrInvalidCoordinates indicates the provided coordinates are invalid or out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Provider defines the interface for routing providers.
type Provider interface {
	// GetRoute retrieves a driving route through the given waypoints.
	GetRoute(ctx context.Context, req RouteRequest) (*Route, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// TravelMode represents a routing travel mode.
type TravelMode string

const (
	// ModeDrive is the standard driving profile.
	ModeDrive TravelMode = "drive"
	// ModeTruck is the heavy-goods-vehicle profile.
	ModeTruck TravelMode = "truck"
)

// RouteRequest is the request for computing a route.
type RouteRequest struct {
	// Waypoints is the ordered list of points the route must pass through.
	// At least two are required.
	Waypoints []geo.Coordinate
	// Mode is the travel mode (defaults to ModeDrive).
	Mode TravelMode
}

// Route represents a routed leg between waypoints.
type Route struct {
	// Geometry is the opaque GeoJSON geometry of the route, passed through
	// to the caller untouched.
	Geometry json.RawMessage
	// DistanceMiles is the total driving distance in statute miles.
	DistanceMiles float64
	// DurationHours is the total driving time in hours.
	DurationHours float64
	// Provider identifies which provider produced the route.
	Provider string
	// FetchedAt records when the route was retrieved.
	FetchedAt time.Time
}

// Error provides detailed error information from the routing provider.
type Error struct {
	Provider string // Provider that generated the error
	Code     string // Error code from the provider
	Message  string // Human-readable error message
	Err      error  // Underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
