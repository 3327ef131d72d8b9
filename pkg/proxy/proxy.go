// Package proxy composes the cache, upstream fetcher, and response filter
// into the two HTTP handlers the service exposes: sport-wide odds and
// single-event odds. Both run the same machine: derive key, serve a fresh
// hit, otherwise fetch, transform, store, and mirror upstream's status.
package proxy

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oddsgate/odds-proxy/pkg/cache"
	"github.com/oddsgate/odds-proxy/pkg/filter"
	"github.com/oddsgate/odds-proxy/pkg/upstream"
)

var proxyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "odds_proxy_requests_total",
	Help: "Total proxied requests by endpoint and outcome",
}, []string{"endpoint", "outcome"})

// Proxy holds the per-process state shared by the handlers. The store is the
// only mutable state; it is injected rather than ambient so tests and
// embedders own its lifetime.
type Proxy struct {
	store    *cache.Store
	upstream *upstream.Client
	logger   zerolog.Logger
}

// New creates a Proxy over the given store and upstream client.
func New(store *cache.Store, up *upstream.Client) *Proxy {
	return &Proxy{
		store:    store,
		upstream: up,
		logger:   log.With().Str("component", "proxy").Logger(),
	}
}

// OddsHandler serves the sport-wide odds collection.
func (p *Proxy) OddsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := upstream.Query{
			Sport:      queryOrDefault(r, "sport", defaultSport),
			Regions:    queryOrDefault(r, "regions", defaultRegions),
			Markets:    queryOrDefault(r, "markets", defaultCollectionMarkets),
			OddsFormat: queryOrDefault(r, "oddsFormat", defaultOddsFormat),
		}
		p.serve(w, r, q, filter.KindCollection, "odds")
	}
}

// EventOddsHandler serves odds for one event. The event id comes from the
// {id} URL parameter and folds into the cache key via the resource path.
func (p *Proxy) EventOddsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := upstream.Query{
			Sport:      queryOrDefault(r, "sport", defaultSport),
			Regions:    queryOrDefault(r, "regions", defaultRegions),
			Markets:    queryOrDefault(r, "markets", defaultEventMarkets),
			OddsFormat: queryOrDefault(r, "oddsFormat", defaultOddsFormat),
			EventID:    chi.URLParam(r, "id"),
		}
		p.serve(w, r, q, filter.KindSingle, "event_odds")
	}
}

func (p *Proxy) serve(w http.ResponseWriter, r *http.Request, q upstream.Query, kind filter.Kind, endpoint string) {
	ttl := effectiveTTL(r.URL.Query().Get("ttl"))
	key := cache.Key(q.Resource(), q.Values())

	if entry, ok := p.store.Get(key); ok && entry.Fresh(ttl) {
		cache.Hits.Inc()
		proxyRequestsTotal.WithLabelValues(endpoint, "hit").Inc()
		p.logger.Debug().
			Str("key", key).
			Dur("age", entry.Age()).
			Msg("Serving cached response")

		writeHeaders(w, ttl)
		w.WriteHeader(entry.StatusCode)
		w.Write(entry.Body)
		return
	}
	cache.Misses.Inc()

	status, body, err := p.upstream.Fetch(r.Context(), q)
	if err != nil {
		p.fail(w, endpoint, err)
		return
	}

	transformed, err := filter.Transform(status, body, kind)
	if err != nil {
		p.fail(w, endpoint, err)
		return
	}

	// Non-2xx upstream responses are valid, cacheable outcomes; only internal
	// faults bypass the store.
	p.store.Set(key, cache.Entry{
		CachedAt:   time.Now(),
		StatusCode: status,
		Body:       transformed,
	})

	proxyRequestsTotal.WithLabelValues(endpoint, "miss").Inc()
	p.logger.Debug().
		Str("key", key).
		Int("status", status).
		Msg("Cached upstream response")

	writeHeaders(w, ttl)
	w.WriteHeader(status)
	w.Write(transformed)
}

// fail converts any internal fault into the uniform 500 response. Detail
// stays in server-side logs; nothing is cached for this request.
func (p *Proxy) fail(w http.ResponseWriter, endpoint string, err error) {
	proxyRequestsTotal.WithLabelValues(endpoint, "error").Inc()
	p.logger.Error().
		Err(err).
		Str("endpoint", endpoint).
		Msg("Proxy request failed")

	writeHeaders(w, ErrorTTL)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"error":"Proxy error"}`))
}
