package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// credentialParam is the upstream API key parameter. It must never become a
// cache differentiator or appear in a serialized key.
const credentialParam = "apikey"

// Key generates a deterministic cache key string for a logical resource and
// its query parameters.
// Format: odds:resource:param1=val1:param2=val2
//
// Example:
//
//	odds:sports/americanfootball_nfl/odds:markets=h2h:regions=us
//
// Parameters are sorted by name, so requests differing only in query string
// order share one entry. Any credential parameter is stripped regardless of
// case. Key is a pure function of its inputs and never fails.
func Key(resource string, params url.Values) string {
	parts := []string{"odds"}

	if r := strings.Trim(resource, "/"); r != "" {
		parts = append(parts, r)
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if strings.ToLower(k) == credentialParam {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, params.Get(k)))
	}

	return strings.Join(parts, ":")
}
