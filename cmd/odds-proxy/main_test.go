package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oddsgate/odds-proxy/pkg/cache"
)

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	// Touch the cache package so its metrics are registered.
	cache.NewStore().Set("probe", cache.Entry{CachedAt: time.Now()})

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	promhttp.Handler().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	bodyStr := string(body)
	if !strings.Contains(bodyStr, "# HELP") || !strings.Contains(bodyStr, "# TYPE") {
		t.Error("Expected Prometheus format metrics output")
	}
	if !strings.Contains(bodyStr, "odds_cache_entries") {
		t.Error("Expected metrics output to contain odds_cache_entries")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ODDS_API_KEY", "")
	t.Setenv("UPSTREAM_URL", "")
	t.Setenv("CACHE_SWEEP_MAX_AGE", "")

	config := loadConfig()

	if config.Port != "8080" {
		t.Errorf("Port = %q, want 8080", config.Port)
	}
	if config.UpstreamURL != "https://api.the-odds-api.com/v4" {
		t.Errorf("UpstreamURL = %q, want the production odds API", config.UpstreamURL)
	}
	if config.SweepMaxAge != 600*time.Second {
		t.Errorf("SweepMaxAge = %v, want 600s", config.SweepMaxAge)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ODDS_PROXY_TEST_VAR", "set")

	if got := getEnv("ODDS_PROXY_TEST_VAR", "fallback"); got != "set" {
		t.Errorf("getEnv() = %q, want set", got)
	}
	if got := getEnv("ODDS_PROXY_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %q, want fallback", got)
	}
}
