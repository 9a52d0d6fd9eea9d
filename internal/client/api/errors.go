package api

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies Remote Adapter failures for retry policy.
type ErrorKind int

const (
	// KindNetwork covers transport failures, timeouts and 5xx responses.
	// Retryable with backoff.
	KindNetwork ErrorKind = iota
	// KindAuthExpired means the access token was not accepted. The caller
	// should refresh credentials and retry.
	KindAuthExpired
	// KindRateLimited means the server asked us to slow down. RetryAfter
	// carries the server-provided delay when present.
	KindRateLimited
	// KindServerRejected is a permanent failure for the request; not retried.
	KindServerRejected
)

// Error is the typed failure returned by every Remote Adapter call.
type Error struct {
	Message    string
	RetryAfter time.Duration
	Kind       ErrorKind
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("remote: %s", e.Message)
}

// IsRetryable reports whether the failure is transient (network or rate
// limit). Auth expiry is handled separately via IsAuthExpired.
func IsRetryable(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == KindNetwork || apiErr.Kind == KindRateLimited
}

// IsAuthExpired reports whether credentials must be refreshed.
func IsAuthExpired(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuthExpired
}

// RetryAfter returns the server-provided delay for rate-limited failures,
// or zero.
func RetryAfter(err error) time.Duration {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindRateLimited {
		return apiErr.RetryAfter
	}
	return 0
}
