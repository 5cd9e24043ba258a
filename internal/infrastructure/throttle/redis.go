package throttle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"backoffice/internal/domain/throttle"
)

// RedisThrottler is a fixed-window throttler backed by Redis counters, shared
// across process instances. Each identifier maps to one counter key whose TTL
// equals the limit's window; the window starts at the first tracked request.
type RedisThrottler struct {
	rdb    *redis.Client
	prefix string
}

type RedisOption func(*RedisThrottler)

func WithPrefix(prefix string) RedisOption {
	return func(t *RedisThrottler) { t.prefix = strings.Trim(prefix, ":") }
}

// NewRedisThrottler creates a new Redis-backed throttler.
func NewRedisThrottler(rdb *redis.Client, opts ...RedisOption) *RedisThrottler {
	t := &RedisThrottler{
		rdb:    rdb,
		prefix: "throttle",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *RedisThrottler) key(identifier string) string {
	return t.prefix + ":" + identifier
}

// IsAllowed reports whether the identifier is under its limit in the current window.
func (t *RedisThrottler) IsAllowed(ctx context.Context, identifier string, limit throttle.Limit) (bool, error) {
	count, err := t.rdb.Get(ctx, t.key(identifier)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle get %q: %w", identifier, err)
	}
	return count < limit.MaxRequests(), nil
}

// TrackRequest records one request against the identifier's current window.
// INCR and ExpireNX run in one pipeline so the window TTL is set exactly once,
// by whichever request created the key.
func (t *RedisThrottler) TrackRequest(ctx context.Context, identifier string, limit throttle.Limit) error {
	key := t.key(identifier)

	pipe := t.rdb.Pipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, limit.Window())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle track %q: %w", identifier, err)
	}
	return nil
}

// GetRemainingRequests returns how many requests the identifier has left in
// the current window, never negative.
func (t *RedisThrottler) GetRemainingRequests(ctx context.Context, identifier string, limit throttle.Limit) (int, error) {
	count, err := t.rdb.Get(ctx, t.key(identifier)).Int()
	if err == redis.Nil {
		return limit.MaxRequests(), nil
	}
	if err != nil {
		return 0, fmt.Errorf("throttle get %q: %w", identifier, err)
	}

	remaining := limit.MaxRequests() - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// ResetThrottling discards all tracked state for the identifier.
func (t *RedisThrottler) ResetThrottling(ctx context.Context, identifier string) error {
	if err := t.rdb.Del(ctx, t.key(identifier)).Err(); err != nil {
		return fmt.Errorf("throttle reset %q: %w", identifier, err)
	}
	return nil
}

// WindowTTL returns the remaining lifetime of the identifier's window, or zero
// when no window is open. Used for Retry-After headers.
func (t *RedisThrottler) WindowTTL(ctx context.Context, identifier string) (time.Duration, error) {
	ttl, err := t.rdb.TTL(ctx, t.key(identifier)).Result()
	if err != nil {
		return 0, fmt.Errorf("throttle ttl %q: %w", identifier, err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

var _ throttle.Throttler = (*RedisThrottler)(nil)
