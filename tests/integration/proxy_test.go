package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/oddsgate/odds-proxy/internal/testutil"
	"github.com/oddsgate/odds-proxy/pkg/cache"
	"github.com/oddsgate/odds-proxy/pkg/proxy"
	"github.com/oddsgate/odds-proxy/pkg/upstream"
)

// newService assembles the full router the way cmd/odds-proxy does, pointed
// at a mock odds provider.
func newService(t *testing.T) (*testutil.MockUpstream, *httptest.Server) {
	t.Helper()

	mock := testutil.NewMockUpstream()
	t.Cleanup(mock.Close)

	p := proxy.New(cache.NewStore(), upstream.New(mock.URL(), "integration-key"))

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))
	r.Get("/v1/odds", p.OddsHandler())
	r.Get("/v1/events/{id}/odds", p.EventOddsHandler())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return mock, server
}

func TestProxyEndToEnd(t *testing.T) {
	mock, server := newService(t)
	mock.SetResponse("/sports/americanfootball_nfl/odds", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       testutil.EventsPayload,
	})

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/v1/odds?ttl=30", nil)
	req.Header.Set("Origin", "https://example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /v1/odds failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := resp.Header.Get("Cache-Control"); got != "public, s-maxage=30, stale-while-revalidate=15" {
		t.Errorf("Cache-Control = %q", got)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}

	var events []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1 after bookmaker filtering", len(events))
	}

	// Credential injection reaches upstream but stays out of the client view.
	if got := mock.GetLastQuery().Get("apiKey"); got != "integration-key" {
		t.Errorf("upstream saw apiKey = %q, want the configured credential", got)
	}

	// Second round trip is served from cache.
	resp2, err := http.Get(server.URL + "/v1/odds?ttl=30")
	if err != nil {
		t.Fatalf("second GET failed: %v", err)
	}
	resp2.Body.Close()
	if mock.GetRequestCount() != 1 {
		t.Errorf("upstream request count = %d, want 1", mock.GetRequestCount())
	}
}

func TestProxyEndToEnd_SingleEvent(t *testing.T) {
	mock, server := newService(t)
	mock.SetResponse("/sports/americanfootball_nfl/events/evt-9/odds", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       testutil.SingleEventPayload,
	})

	resp, err := http.Get(server.URL + "/v1/events/evt-9/odds")
	if err != nil {
		t.Fatalf("GET single event failed: %v", err)
	}
	defer resp.Body.Close()

	var event map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		t.Fatalf("response is not a JSON object: %v", err)
	}
	if event["id"] != "evt-9" {
		t.Errorf("event id = %v, want evt-9", event["id"])
	}
	if books := event["bookmakers"].([]any); len(books) != 0 {
		t.Errorf("bookmakers = %v, want empty after filtering", books)
	}
}

func TestProxyEndToEnd_Preflight(t *testing.T) {
	_, server := newService(t)

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/v1/odds", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("preflight Access-Control-Allow-Origin = %q, want *", got)
	}
}
