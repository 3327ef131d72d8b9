// Package upstream provides the HTTP fetcher for the third-party sports-odds
// API. It injects the API credential, performs exactly one GET per call, and
// hands back the raw status and body for any HTTP status; only transport
// faults are reported as errors.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the production odds API root.
const DefaultBaseURL = "https://api.the-odds-api.com/v4"

// Prometheus metrics for upstream fetch operations.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "odds_upstream_requests_total",
		Help: "Total upstream requests by endpoint kind and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "odds_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint kind",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})
)

// Query describes one upstream odds request. EventID selects the single-event
// endpoint when non-empty.
type Query struct {
	Sport      string
	Regions    string
	Markets    string
	OddsFormat string
	EventID    string
}

// Resource returns the upstream path for the query. The same string doubles
// as the logical resource for cache key derivation.
func (q Query) Resource() string {
	if q.EventID != "" {
		return fmt.Sprintf("sports/%s/events/%s/odds", q.Sport, q.EventID)
	}
	return fmt.Sprintf("sports/%s/odds", q.Sport)
}

// Values returns the credential-free query parameters for the request.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("regions", q.Regions)
	v.Set("markets", q.Markets)
	v.Set("oddsFormat", q.OddsFormat)
	return v
}

// endpointKind labels metrics without exploding cardinality per sport/event.
func (q Query) endpointKind() string {
	if q.EventID != "" {
		return "event_odds"
	}
	return "odds"
}

// Client fetches from the odds provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     zerolog.Logger
}

// New creates an upstream client. An empty baseURL selects DefaultBaseURL.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  log.With().Str("component", "upstream").Logger(),
	}
}

// Fetch performs one GET against the odds provider and returns the raw
// status and body. A non-2xx status is a valid result, not an error; the
// returned error is non-nil only for transport-level faults and never
// contains the credential.
func (c *Client) Fetch(ctx context.Context, q Query) (int, []byte, error) {
	endpoint := q.endpointKind()

	start := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	params := q.Values()
	params.Set("apiKey", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, q.Resource(), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, &TransportError{Resource: q.Resource(), Err: redact(err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		ferr := &TransportError{Resource: q.Resource(), Err: redact(err)}
		c.logger.Error().
			Str("resource", q.Resource()).
			Err(ferr).
			Msg("Upstream request failed")
		return 0, nil, ferr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		return 0, nil, &TransportError{Resource: q.Resource(), Err: redact(err)}
	}

	upstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug().
		Str("resource", q.Resource()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Upstream fetch complete")

	return resp.StatusCode, body, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
