// Package throttle defines request throttling: an immutable limit value
// object and the Throttler contract implemented by the storage backends.
package throttle

import (
	"fmt"
	"time"

	"backoffice/internal/core/apperror"
)

// Default limit: 60 requests per 60 seconds.
const (
	DefaultWindowSeconds = 60
	DefaultMaxRequests   = 60
)

// Limit is an immutable throttling limit. Construct with New or Default;
// the zero value is invalid.
type Limit struct {
	windowSeconds int
	maxRequests   int
}

// New creates a Limit. Both parameters must be positive.
func New(windowSeconds, maxRequests int) (Limit, error) {
	if windowSeconds <= 0 {
		return Limit{}, apperror.NewValidation("throttle window must be positive").
			WithDetail("field", "windowSeconds").
			WithDetail("value", windowSeconds)
	}
	if maxRequests <= 0 {
		return Limit{}, apperror.NewValidation("throttle max requests must be positive").
			WithDetail("field", "maxRequests").
			WithDetail("value", maxRequests)
	}
	return Limit{windowSeconds: windowSeconds, maxRequests: maxRequests}, nil
}

// Default returns the standard limit of 60 requests per 60 seconds.
func Default() Limit {
	return Limit{windowSeconds: DefaultWindowSeconds, maxRequests: DefaultMaxRequests}
}

// WindowSeconds returns the window length in seconds.
func (l Limit) WindowSeconds() int {
	return l.windowSeconds
}

// MaxRequests returns the maximum number of requests per window.
func (l Limit) MaxRequests() int {
	return l.maxRequests
}

// Window returns the window length as a duration.
func (l Limit) Window() time.Duration {
	return time.Duration(l.windowSeconds) * time.Second
}

// IsZero reports whether the limit was never initialized.
func (l Limit) IsZero() bool {
	return l.windowSeconds == 0 && l.maxRequests == 0
}

// String implements fmt.Stringer.
func (l Limit) String() string {
	return fmt.Sprintf("%d requests per %d seconds", l.maxRequests, l.windowSeconds)
}
