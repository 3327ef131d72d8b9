// Package filter implements the status-aware response transformation for
// proxied odds payloads: bookmakers are restricted to a fixed allow-list
// while every other upstream field passes through untouched.
package filter

import (
	"encoding/json"
	"fmt"
)

// Kind selects the expected payload shape.
type Kind string

const (
	// KindCollection expects a JSON array of events.
	KindCollection Kind = "collection"

	// KindSingle expects one JSON event object.
	KindSingle Kind = "single"
)

// allowedBookmakers is the fixed set of sportsbook titles permitted to remain
// in filtered output.
var allowedBookmakers = map[string]bool{
	"DraftKings":        true,
	"FanDuel":           true,
	"BetMGM":            true,
	"Caesars":           true,
	"BetRivers":         true,
	"Resorts World Bet": true,
}

// Allowed reports whether a bookmaker title is on the allow-list.
func Allowed(title string) bool {
	return allowedBookmakers[title]
}

// Transform applies the bookmaker filter to a successful upstream payload and
// re-serializes it. Non-2xx bodies pass through verbatim (they carry the
// provider's own error payload). For collections, events left with zero
// qualifying bookmakers are dropped; for a single event the object is kept
// even when its filtered list is empty. The single-event shape is the bare
// object, never a one-element array.
//
// The transform edits decoded generic JSON so unknown upstream fields survive
// round-tripping. A parse failure on a 2xx body is an error for the caller's
// fault path.
func Transform(status int, body []byte, kind Kind) ([]byte, error) {
	if status < 200 || status >= 300 {
		return body, nil
	}

	switch kind {
	case KindCollection:
		var events []map[string]any
		if err := json.Unmarshal(body, &events); err != nil {
			return nil, fmt.Errorf("parse upstream collection payload: %w", err)
		}

		filtered := make([]map[string]any, 0, len(events))
		for _, event := range events {
			books := filterBookmakers(event)
			if len(books) == 0 {
				continue
			}
			event["bookmakers"] = books
			filtered = append(filtered, event)
		}
		return json.Marshal(filtered)

	case KindSingle:
		var event map[string]any
		if err := json.Unmarshal(body, &event); err != nil {
			return nil, fmt.Errorf("parse upstream event payload: %w", err)
		}
		// A JSON null parses fine but leaves the map nil; writing to it
		// would panic. Treat it as a shape failure like any other bad body.
		if event == nil {
			return nil, fmt.Errorf("parse upstream event payload: expected an object, got null")
		}

		event["bookmakers"] = filterBookmakers(event)
		return json.Marshal(event)

	default:
		return nil, fmt.Errorf("unknown endpoint kind %q", kind)
	}
}

// filterBookmakers returns the allow-listed bookmakers of one event. A
// missing or malformed bookmakers field is treated as empty, not as an error.
func filterBookmakers(event map[string]any) []any {
	raw, _ := event["bookmakers"].([]any)

	kept := make([]any, 0, len(raw))
	for _, b := range raw {
		bookmaker, ok := b.(map[string]any)
		if !ok {
			continue
		}
		title, _ := bookmaker["title"].(string)
		if Allowed(title) {
			kept = append(kept, b)
		}
	}
	return kept
}
