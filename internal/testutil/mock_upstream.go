// Package testutil provides testing utilities for the odds proxy.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// MockResponse defines the behavior of a mock odds API endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// MockUpstream is a configurable fake odds provider for testing. It counts
// requests so tests can prove that cache hits suppress upstream calls, and it
// captures the last query string so tests can assert credential injection.
type MockUpstream struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	RequestCount int
	LastQuery    url.Values
}

// NewMockUpstream creates a running mock odds API server.
func NewMockUpstream() *MockUpstream {
	mock := &MockUpstream{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastQuery = r.URL.Query()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL, usable as the upstream base URL.
func (m *MockUpstream) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockUpstream) Close() {
	m.server.Close()
}

// Reset clears tracking state.
func (m *MockUpstream) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastQuery = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockUpstream) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockUpstream) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests the server has received.
func (m *MockUpstream) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetLastQuery returns the query values of the most recent request.
func (m *MockUpstream) GetLastQuery() url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastQuery
}

// defaultHandler answers any unconfigured path with an empty event list.
func (m *MockUpstream) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`[]`))
}

// EventsPayload is a ready-made collection body containing events with both
// allow-listed and excluded bookmakers.
const EventsPayload = `[
	{
		"id": "evt-1",
		"sport_key": "americanfootball_nfl",
		"commence_time": "2026-09-10T00:20:00Z",
		"home_team": "Kansas City Chiefs",
		"away_team": "Buffalo Bills",
		"bookmakers": [
			{"key": "draftkings", "title": "DraftKings", "markets": [{"key": "h2h", "outcomes": []}]},
			{"key": "pinnacle", "title": "Pinnacle", "markets": [{"key": "h2h", "outcomes": []}]}
		]
	},
	{
		"id": "evt-2",
		"sport_key": "americanfootball_nfl",
		"commence_time": "2026-09-11T00:20:00Z",
		"home_team": "Dallas Cowboys",
		"away_team": "New York Giants",
		"bookmakers": [
			{"key": "bovada", "title": "Bovada", "markets": []}
		]
	}
]`

// SingleEventPayload is a ready-made single-event body whose only bookmaker
// is not allow-listed.
const SingleEventPayload = `{
	"id": "evt-9",
	"sport_key": "americanfootball_nfl",
	"commence_time": "2026-09-12T17:00:00Z",
	"home_team": "Green Bay Packers",
	"away_team": "Chicago Bears",
	"bookmakers": [
		{"key": "pinnacle", "title": "Pinnacle", "markets": [{"key": "player_pass_yds", "outcomes": []}]}
	]
}`
