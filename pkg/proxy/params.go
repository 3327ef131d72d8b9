package proxy

import (
	"net/http"
	"strconv"
	"time"
)

const (
	// DefaultTTL is the freshness window when the client supplies none.
	DefaultTTL = 60 * time.Second

	// MinTTL is the floor applied to client-supplied TTLs.
	MinTTL = 10 * time.Second

	// MaxTTL caps client-supplied TTLs. Anything longer is pointless for
	// live odds and huge values would overflow the duration math.
	MaxTTL = 24 * time.Hour

	// ErrorTTL is the fixed short window used on the internal fault path.
	ErrorTTL = 10 * time.Second
)

const (
	defaultSport             = "americanfootball_nfl"
	defaultRegions           = "us"
	defaultOddsFormat        = "american"
	defaultCollectionMarkets = "h2h,spreads,totals"
	defaultEventMarkets      = "player_pass_yds,player_rush_yds,player_receptions"
)

// effectiveTTL computes the freshness window from the raw ttl query value.
// Non-numeric or non-positive input falls back to the default; anything
// outside the floor and cap is clamped. Malformed client input is coerced,
// never rejected.
func effectiveTTL(raw string) time.Duration {
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return DefaultTTL
	}
	if secs > int(MaxTTL/time.Second) {
		return MaxTTL
	}

	ttl := time.Duration(secs) * time.Second
	if ttl < MinTTL {
		return MinTTL
	}
	return ttl
}

// queryOrDefault reads a query parameter, falling back when absent or empty.
func queryOrDefault(r *http.Request, name, fallback string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return fallback
}
