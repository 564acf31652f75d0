// Package geo provides geographic primitives and address geocoding.
package geo

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for geocoding operations.
var (
	// ErrNoResults indicates the provider returned zero matches for an address.
	ErrNoResults = errors.New("no geocoding results for address")
	// ErrProviderUnavailable indicates the geocoding provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
	// ErrMalformedResponse indicates the provider response is missing expected fields.
	ErrMalformedResponse = errors.New("malformed geocoding response")
)

// Provider defines the interface for geocoding providers.
type Provider interface {
	// Geocode resolves a free-text address to a coordinate.
	Geocode(ctx context.Context, address string) (Coordinate, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// Coordinate represents a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate checks that the coordinate is within valid ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lon)
	}
	return nil
}

// Error provides detailed error information from a geocoding provider.
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
