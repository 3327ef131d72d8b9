package cache

import "time"

// Entry is one cached upstream response.
type Entry struct {
	// CachedAt is when the entry was written.
	CachedAt time.Time `json:"cached_at"`

	// StatusCode is the upstream HTTP status captured at write time.
	StatusCode int `json:"status_code"`

	// Body is the serialized response payload: transformed JSON for 2xx,
	// the raw upstream body otherwise.
	Body []byte `json:"body"`
}

// Fresh reports whether the entry is still inside the TTL window.
func (e Entry) Fresh(ttl time.Duration) bool {
	return time.Since(e.CachedAt) < ttl
}

// Age returns how long ago the entry was written.
func (e Entry) Age() time.Duration {
	return time.Since(e.CachedAt)
}
