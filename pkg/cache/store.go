package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store is a process-lifetime in-memory response cache. Reads and writes are
// safe under concurrent request handling; there is no single-flight
// de-duplication, so two cold requests for one key may both fetch upstream
// and the later write wins.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewStore creates an empty response cache.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
	}
}

// Get retrieves the entry for key. The second return value is false when no
// entry exists. Freshness is the caller's concern (Entry.Fresh).
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// Set writes an entry, unconditionally overwriting any previous one.
func (s *Store) Set(key string, entry Entry) {
	s.mu.Lock()
	s.entries[key] = entry
	n := len(s.entries)
	s.mu.Unlock()

	Stores.Inc()
	Entries.Set(float64(n))
}

// Len returns the current number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep deletes entries older than maxAge and returns how many were removed.
// Entries younger than any usable request TTL are never touched.
func (s *Store) Sweep(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if time.Since(entry.CachedAt) >= maxAge {
			delete(s.entries, key)
			removed++
		}
	}
	Entries.Set(float64(len(s.entries)))
	return removed
}

// Janitor sweeps the store every interval until ctx is cancelled. It is the
// bound on the otherwise unbounded growth of the cache and runs as a
// background goroutine owned by the caller.
func (s *Store) Janitor(ctx context.Context, interval, maxAge time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(maxAge); removed > 0 {
				logger.Debug().
					Int("removed", removed).
					Int("remaining", s.Len()).
					Msg("Swept expired cache entries")
			}
		}
	}
}
