// Package cache provides the in-memory response cache for the odds proxy:
// deterministic key derivation, TTL-based freshness, and a process-lifetime
// store. Entries are immutable once written; freshness is evaluated per
// request against a caller-supplied TTL rather than stored on the entry.
package cache
