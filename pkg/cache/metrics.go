package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits tracks requests served from a fresh cache entry.
	Hits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "odds_cache_hits_total",
			Help: "Total number of requests served from cache",
		},
	)

	// Misses tracks cold and expired lookups.
	Misses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "odds_cache_misses_total",
			Help: "Total number of cache misses (absent or stale entries)",
		},
	)

	// Stores tracks entry writes.
	Stores = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "odds_cache_stores_total",
			Help: "Total number of cache entry writes",
		},
	)

	// Entries tracks the current number of cached entries.
	Entries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "odds_cache_entries",
			Help: "Current number of entries in the response cache",
		},
	)
)
