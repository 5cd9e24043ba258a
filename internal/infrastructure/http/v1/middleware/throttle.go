package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/domain/throttle"
	"backoffice/pkg/logger"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter         = "Retry-After"
)

// Throttle middleware enforces a fixed-window request limit per client.
// Authenticated requests are keyed by user ID, anonymous ones by client IP.
//
// Backend failures fail open: the request proceeds and the error is logged,
// so a throttler outage never takes the API down with it.
func Throttle(throttler throttle.Throttler, limit throttle.Limit) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		identifier := throttleIdentifier(c)

		allowed, err := throttler.IsAllowed(ctx, identifier, limit)
		if err != nil {
			logger.Warn(ctx, "throttle check failed, failing open",
				"identifier", identifier,
				"error", err,
			)
			c.Next()
			return
		}

		if !allowed {
			c.Header(HeaderRateLimitLimit, strconv.Itoa(limit.MaxRequests()))
			c.Header(HeaderRateLimitRemaining, "0")
			c.Header(HeaderRetryAfter, strconv.Itoa(limit.WindowSeconds()))

			_ = c.Error(
				apperror.NewRateLimited("too many requests").
					WithDetail("limit", limit.String()),
			)
			c.Abort()
			return
		}

		if err := throttler.TrackRequest(ctx, identifier, limit); err != nil {
			logger.Warn(ctx, "throttle tracking failed",
				"identifier", identifier,
				"error", err,
			)
		}

		remaining, err := throttler.GetRemainingRequests(ctx, identifier, limit)
		if err == nil {
			c.Header(HeaderRateLimitLimit, strconv.Itoa(limit.MaxRequests()))
			c.Header(HeaderRateLimitRemaining, strconv.Itoa(remaining))
		}

		c.Next()
	}
}

// ThrottleBurst rejects requests that exceed the per-client token bucket.
// Complements Throttle: catches spikes shorter than the fixed window.
type BurstAllower interface {
	Allow(identifier string) bool
}

func ThrottleBurst(limiter BurstAllower) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(throttleIdentifier(c)) {
			c.Header(HeaderRetryAfter, "1")
			_ = c.Error(apperror.NewRateLimited("request burst too large"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func throttleIdentifier(c *gin.Context) string {
	if user := appctx.GetUser(c.Request.Context()); user != nil && user.UserID != "" {
		return "user:" + user.UserID
	}
	return "ip:" + c.ClientIP()
}
