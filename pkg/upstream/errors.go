package upstream

import (
	"errors"
	"fmt"
	"net/url"
)

// TransportError reports a network-level failure reaching the odds provider
// (DNS, connection refused, timeout). Upstream error statuses are not
// transport errors; they are returned as ordinary results.
type TransportError struct {
	Resource string
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream transport fault for %s: %v", e.Resource, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// redact strips the request URL out of transport errors. url.Error embeds the
// full URL, credential included; only the inner cause may surface in logs or
// error text.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
