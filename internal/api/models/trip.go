package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SimulateTripRequest is the request body for POST /v1/trips:simulate.
type SimulateTripRequest struct {
	CurrentLocation string `json:"current_location" validate:"required"`
	PickupLocation  string `json:"pickup_location" validate:"required"`
	DropoffLocation string `json:"dropoff_location" validate:"required"`

	// CurrentCycleUsed is how many cycle hours the driver has already used.
	// Malformed values decode as zero rather than failing the request.
	CurrentCycleUsed FlexInt `json:"current_cycle_used"`

	// GeoapifyToken optionally overrides the configured provider credential
	// for this request.
	GeoapifyToken string `json:"geoapify_token"`
}

// FlexInt is an int that tolerates sloppy JSON: numbers are truncated,
// numeric strings are parsed, and anything else silently becomes zero.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler for FlexInt.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*f = FlexInt(parsed)
			return nil
		}
	}

	*f = 0
	return nil
}
