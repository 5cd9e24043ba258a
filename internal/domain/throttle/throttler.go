package throttle

import (
	"context"
)

// Throttler tracks request counts per identifier over a fixed window.
//
// Identifiers are opaque strings (user ID, client IP, API key). An elapsed
// window means the count is implicitly zero on the next call. Being over
// the limit is reported through IsAllowed, never as an error; errors are
// reserved for infrastructure failures (callers decide the failure policy).
type Throttler interface {
	// IsAllowed reports whether one more request fits into the current
	// window. It does not count the request.
	IsAllowed(ctx context.Context, identifier string, limit Limit) (bool, error)

	// TrackRequest records one request against the identifier, starting a
	// new window if none is active. Concurrent calls for one identifier
	// must not lose updates.
	TrackRequest(ctx context.Context, identifier string, limit Limit) error

	// GetRemainingRequests returns how many requests remain in the current
	// window, never negative.
	GetRemainingRequests(ctx context.Context, identifier string, limit Limit) (int, error)

	// ResetThrottling clears all state for the identifier immediately.
	ResetThrottling(ctx context.Context, identifier string) error
}
