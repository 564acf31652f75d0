package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulroute/haulroute/internal/api"
	"github.com/haulroute/haulroute/internal/api/handler"
	"github.com/haulroute/haulroute/internal/provider/resilience"
	"github.com/haulroute/haulroute/internal/trip"
)

type staticSimulator struct {
	result *trip.Result
}

func (s *staticSimulator) Simulate(context.Context, trip.Request) (*trip.Result, error) {
	return s.result, nil
}

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	factory := func(string) handler.TripSimulator {
		return &staticSimulator{result: &trip.Result{
			Status:  "success",
			Message: "Trip simulation completed successfully",
		}}
	}
	return api.NewRouter(api.RouterConfig{
		Version:          "test",
		BuildTime:        "2026-01-01T00:00:00Z",
		Logger:           logger,
		SimulatorFactory: factory,
		ProviderRegistry: resilience.NewRegistry(),
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SystemStatus(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Contains(t, body, "providers")
}

func TestRouter_SimulateTrip(t *testing.T) {
	router := newTestRouter()

	body := `{
		"current_location": "Chicago, IL",
		"pickup_location": "Denver, CO",
		"dropoff_location": "Phoenix, AZ",
		"current_cycle_used": 0
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/trips:simulate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_SimulateTrip_RejectsNonJSONContentType(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:simulate", strings.NewReader("x=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRouter_UnknownRouteReturns404(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
