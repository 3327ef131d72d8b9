package proxy

import (
	"fmt"
	"math"
	"net/http"
	"time"
)

// writeHeaders applies the shared caching, content-type, and CORS policy on
// every exit path: CDN-level shared caching for ttl with a
// stale-while-revalidate window of half the ttl, rounded. The allow-origin
// header is set here unconditionally so origin-less clients (curl,
// server-to-server) see it too; the router's cors middleware additionally
// covers preflight requests.
func writeHeaders(w http.ResponseWriter, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	swr := int(math.Round(ttl.Seconds() / 2))

	w.Header().Set("Cache-Control",
		fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d", maxAge, swr))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}
