package resilience

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(name string) ClientConfig {
	cfg := DefaultClientConfig(name)
	cfg.InitialInterval = time.Millisecond
	cfg.MaxInterval = 5 * time.Millisecond
	return cfg
}

func TestClient_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`ok`))
	}))
	defer server.Close()

	client := NewClient(fastConfig("test-success"))

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, client.State())
}

func TestClient_Do_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(fastConfig("test-retry"))

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Do_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(fastConfig("test-4xx"))

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses must not be retried")
}

func TestClient_Do_ReturnsLastResponseAfterExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := fastConfig("test-exhausted")
	cfg.MaxRetries = 2
	client := NewClient(cfg)

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestClient_Do_CircuitOpensAfterSustainedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := fastConfig("test-breaker")
	cfg.MaxRetries = 5
	client := NewClient(cfg)

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	// Drive enough failures through to trip the breaker.
	resp, err := client.Do(req)
	if err == nil {
		resp.Body.Close()
	}

	assert.Equal(t, gobreaker.StateOpen, client.State())
}

func TestClient_Do_RecordsOutcomeInRegistry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	registry := NewRegistry()
	cfg := fastConfig("test-registry-record")
	cfg.Registry = registry
	client := NewClient(cfg)

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	health := registry.Health()
	require.Len(t, health, 1)
	assert.Equal(t, "test-registry-record", health[0].Name)
	assert.NotNil(t, health[0].LastSuccessAt)
	assert.Nil(t, health[0].LastFailureAt)
}

func TestRegistry_Health(t *testing.T) {
	registry := NewRegistry()
	client := NewClient(DefaultClientConfig("geoapify-routing"))

	registry.Register("geoapify-routing", client)
	registry.RecordSuccess("geoapify-routing")

	health := registry.Health()
	require.Len(t, health, 1)

	assert.Equal(t, "geoapify-routing", health[0].Name)
	assert.True(t, health[0].IsHealthy())
	assert.NotNil(t, health[0].LastSuccessAt)
	assert.Nil(t, health[0].LastFailureAt)
}

func TestRegistry_RecordFailure(t *testing.T) {
	registry := NewRegistry()
	registry.Register("geoapify-geocoding", NewClient(DefaultClientConfig("geoapify-geocoding")))

	registry.RecordFailure("geoapify-geocoding", assert.AnError)

	health := registry.Health()
	require.Len(t, health, 1)
	assert.NotNil(t, health[0].LastFailureAt)
	assert.Equal(t, assert.AnError.Error(), health[0].LastError)
}
