package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/astral-api/internal/api"
	"github.com/phrazzld/astral-api/internal/config"
	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/platform/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug", CORSAllowedOrigins: "https://app.example.com"},
		Cache:  config.CacheConfig{TTLMinutes: 60, MaxEntries: 100},
		Engine: config.EngineConfig{HouseSystem: "porphyry", ParallelBodies: true, BatchWorkers: 2},
	}
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	reg := prometheus.NewRegistry()
	app, err := newApplicationWithRegistry(context.Background(), testConfig(), log, reg, reg)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewApplicationRejectsBadEngineConfig(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	cfg := testConfig()
	cfg.Engine.HouseSystem = "placidus"

	reg := prometheus.NewRegistry()
	_, err := newApplicationWithRegistry(context.Background(), cfg, log, reg, reg)
	assert.ErrorIs(t, err, domain.ErrInvalidHouseSystem)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestApp(t).setupRouter()

	rec := serve(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "memory", resp.Cache)
	assert.Equal(t, "memory", resp.Store)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestProfileLifecycleThroughRouter(t *testing.T) {
	router := newTestApp(t).setupRouter()

	rec := serve(t, router, http.MethodPost, "/api/profiles", `{
		"name": "Ada",
		"birth_data": {
			"date_time": "1990-06-15T14:30:00",
			"time_zone": "America/New_York",
			"latitude": 40.7128,
			"longitude": -74.006
		}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created api.CreateProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Chart)
	assert.Equal(t, domain.Gemini, created.Chart.Summary.SunSign)

	base := "/api/profiles/" + created.Profile.ID
	rec = serve(t, router, http.MethodGet, base+"/chart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var chart domain.BirthChart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chart))
	assert.Equal(t, created.Chart.ID, chart.ID)

	rec = serve(t, router, http.MethodGet, "/api/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list api.ProfileListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Profiles, 1)

	rec = serve(t, router, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, router, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHoroscopeAndMetricsThroughRouter(t *testing.T) {
	router := newTestApp(t).setupRouter()

	rec := serve(t, router, http.MethodGet, "/api/horoscopes/leo?date=2024-08-01", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var horoscope domain.DailyHoroscope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &horoscope))
	assert.Equal(t, domain.Leo, horoscope.Sign)

	rec = serve(t, router, http.MethodGet, "/api/horoscopes/ophiuchus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `astral_http_requests_total{method="GET",route="/api/horoscopes/{sign}",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestApp(t).setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/charts", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
