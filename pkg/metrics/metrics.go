// Package metrics documents the Prometheus metrics exposed by the odds
// proxy. Metrics are defined with promauto in their owning packages (cache,
// upstream, proxy) to keep them next to the code that drives them; this
// package is the reference for what exists and points at the shared registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the Prometheus registerer all proxy metrics attach to.
var Registry = prometheus.DefaultRegisterer

// Metrics reference
//
// Cache (pkg/cache):
//   - odds_cache_hits_total (Counter): requests served from a fresh entry
//   - odds_cache_misses_total (Counter): cold or stale lookups
//   - odds_cache_stores_total (Counter): entry writes
//   - odds_cache_entries (Gauge): current entry count
//
// Upstream (pkg/upstream):
//   - odds_upstream_requests_total{endpoint, status} (Counter)
//   - odds_upstream_request_duration_seconds{endpoint} (Histogram)
//
// Proxy (pkg/proxy):
//   - odds_proxy_requests_total{endpoint, outcome} (Counter): outcome is
//     hit, miss, or error
//
// Example queries:
//
//	# Cache hit rate
//	rate(odds_cache_hits_total[5m]) /
//	(rate(odds_cache_hits_total[5m]) + rate(odds_cache_misses_total[5m]))
//
//	# Upstream error rate
//	rate(odds_upstream_requests_total{status=~"5.."}[5m])
//
//	# P95 upstream latency
//	histogram_quantile(0.95, rate(odds_upstream_request_duration_seconds_bucket[5m]))
