package gateway_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"manatan-gateway/core/config"
	"manatan-gateway/feature/gateway"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBackend starts a plain HTTP backend and returns a config pointing
// the gateway at it.
func stubBackend(t *testing.T) *config.Config {
	t.Helper()

	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(backendSrv.Close)

	u, err := url.Parse(backendSrv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	cfg := unmanagedConfig()
	cfg.Backend.Host = u.Hostname()
	cfg.Backend.Port = port
	cfg.Server.MetricsEnabled = true
	return cfg
}

func buildState(t *testing.T, cfg *config.Config) *gateway.State {
	t.Helper()
	state, err := gateway.BuildState(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	return state
}

func preflight(path string) *http.Request {
	req := httptest.NewRequest(fiber.MethodOptions, path, nil)
	req.Header.Set(fiber.HeaderOrigin, "https://app.example")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, "POST")
	return req
}

func TestBuildRouter_AllowsAnyOrigin(t *testing.T) {
	app := gateway.BuildRouter(buildState(t, stubBackend(t)))

	resp, err := app.Test(preflight("/api/v1"), 2000)
	require.NoError(t, err)

	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowMethods), "POST")
}

func TestBuildRouterWithoutCORS_NoCORSHeaders(t *testing.T) {
	app := gateway.BuildRouterWithoutCORS(buildState(t, stubBackend(t)))

	resp, err := app.Test(preflight("/api/v1"), 2000)
	require.NoError(t, err)

	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestBuildRouter_ForwardsToBackend(t *testing.T) {
	app := gateway.BuildRouter(buildState(t, stubBackend(t)))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/manga", nil), 2000)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}

func TestBuildRouter_SetsRayID(t *testing.T) {
	app := gateway.BuildRouter(buildState(t, stubBackend(t)))

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), 2000)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))
}

func TestBuildRouter_MetricsEndpoint(t *testing.T) {
	app := gateway.BuildRouter(buildState(t, stubBackend(t)))

	// Generate one proxied request first so the counter moves.
	_, err := app.Test(httptest.NewRequest("GET", "/health", nil), 2000)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "manatan_gateway_requests_total")
	assert.True(t, strings.Contains(string(body), "manatan_gateway_requests_total 1"),
		"expected exactly one forwarded request, got:\n%s", body)
}

func TestBuildRouter_MetricsDisabled(t *testing.T) {
	cfg := stubBackend(t)
	cfg.Server.MetricsEnabled = false
	app := gateway.BuildRouter(buildState(t, cfg))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBuildRouter_ApiKeyProtection(t *testing.T) {
	cfg := stubBackend(t)
	cfg.Server.ApiKey = "s3cret"
	app := gateway.BuildRouter(buildState(t, cfg))

	// Without key the API routes are rejected.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/manga", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// With the key they pass through to the backend.
	req := httptest.NewRequest("GET", "/api/v1/manga", nil)
	req.Header.Set("X-API-Key", "s3cret")
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Health stays public for probes.
	resp, err = app.Test(httptest.NewRequest("GET", "/health", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
