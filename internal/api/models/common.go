// Package models provides request and response models for the HaulRoute API.
package models

import "time"

// ErrorResponse is the wire format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// Error type constants.
const (
	// ErrorTypeValidation marks expected client failures: bad input,
	// insufficient cycle hours, unresolvable addresses, unroutable legs.
	ErrorTypeValidation = "validation_error"
	// ErrorTypeRateLimit marks rate-limited requests.
	ErrorTypeRateLimit = "rate_limit_error"
	// ErrorTypeInternal marks unexpected server failures.
	ErrorTypeInternal = "internal_error"
)

// HealthStatus represents the health status of the service or a provider.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusFail     HealthStatus = "FAIL"
)

// Timestamp is a helper type for time.Time with RFC3339 JSON formatting.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler for Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, string(data[1:len(data)-1]))
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
