package geoapify

// geocodeResponse represents the Geoapify geocode search response.
// Only the fields the client consumes are mapped.
type geocodeResponse struct {
	Features []geocodeFeature `json:"features"`
}

// geocodeFeature is a single match in the geocode response.
type geocodeFeature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
	Properties struct {
		Formatted string `json:"formatted,omitempty"`
		Country   string `json:"country,omitempty"`
		City      string `json:"city,omitempty"`
	} `json:"properties"`
}
