package geoapify

import "encoding/json"

// routeResponse represents the Geoapify routing API response.
// The API returns a GeoJSON FeatureCollection on success, but can also carry
// an error payload with a 200 status.
type routeResponse struct {
	Features   []routeFeature `json:"features"`
	Error      string         `json:"error,omitempty"`
	StatusCode int            `json:"statusCode,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// routeFeature is a single routed feature.
type routeFeature struct {
	Geometry   json.RawMessage `json:"geometry"`
	Properties routeProperties `json:"properties"`
}

// routeProperties carries the route summary. Distance and Time are pointers
// so a missing field is distinguishable from zero.
type routeProperties struct {
	Distance *float64 `json:"distance"` // meters
	Time     *float64 `json:"time"`     // seconds
	Mode     string   `json:"mode,omitempty"`
	Units    string   `json:"units,omitempty"`
}
