// Package throttle provides fixed-window throttler implementations backed by
// process memory or Redis, plus a token-bucket burst smoother.
package throttle

import (
	"context"
	"sync"
	"time"

	"backoffice/internal/domain/throttle"
)

type windowEntry struct {
	windowStart time.Time
	count       int
	lastSeen    time.Time
}

// MemoryThrottler is an in-process fixed-window throttler with per-identifier
// counters and periodic cleanup of idle entries. Safe for concurrent use.
type MemoryThrottler struct {
	mu           sync.Mutex
	entries      map[string]*windowEntry
	idleTTL      time.Duration
	cleanupEvery time.Duration

	now func() time.Time
}

type MemoryOption func(*MemoryThrottler)

func WithIdleTTL(d time.Duration) MemoryOption {
	return func(t *MemoryThrottler) { t.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) MemoryOption {
	return func(t *MemoryThrottler) { t.cleanupEvery = d }
}

// NewMemoryThrottler creates a new in-memory throttler.
func NewMemoryThrottler(opts ...MemoryOption) *MemoryThrottler {
	t := &MemoryThrottler{
		entries:      make(map[string]*windowEntry),
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// entry returns the current-window entry for the identifier, resetting the
// counter when the window has elapsed. Caller must hold t.mu.
func (t *MemoryThrottler) entry(identifier string, limit throttle.Limit) *windowEntry {
	now := t.now()

	ent, ok := t.entries[identifier]
	if !ok {
		ent = &windowEntry{windowStart: now}
		t.entries[identifier] = ent
	}

	if now.Sub(ent.windowStart) >= limit.Window() {
		ent.windowStart = now
		ent.count = 0
	}
	ent.lastSeen = now

	return ent
}

// IsAllowed reports whether the identifier is under its limit in the current window.
func (t *MemoryThrottler) IsAllowed(ctx context.Context, identifier string, limit throttle.Limit) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ent := t.entry(identifier, limit)
	return ent.count < limit.MaxRequests(), nil
}

// TrackRequest records one request against the identifier's current window.
func (t *MemoryThrottler) TrackRequest(ctx context.Context, identifier string, limit throttle.Limit) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entry(identifier, limit).count++
	return nil
}

// GetRemainingRequests returns how many requests the identifier has left in
// the current window, never negative.
func (t *MemoryThrottler) GetRemainingRequests(ctx context.Context, identifier string, limit throttle.Limit) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	remaining := limit.MaxRequests() - t.entry(identifier, limit).count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// ResetThrottling discards all tracked state for the identifier.
func (t *MemoryThrottler) ResetThrottling(ctx context.Context, identifier string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, identifier)
	return nil
}

// Cleanup removes entries not seen within the idle TTL.
func (t *MemoryThrottler) Cleanup() {
	cutoff := t.now().Add(-t.idleTTL)

	t.mu.Lock()
	defer t.mu.Unlock()

	for k, ent := range t.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(t.entries, k)
		}
	}
}

// StartJanitor starts a goroutine that periodically removes idle entries.
// Stop it by cancelling the context.
func (t *MemoryThrottler) StartJanitor(ctx context.Context) {
	if t.cleanupEvery <= 0 {
		return
	}

	ticker := time.NewTicker(t.cleanupEvery)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Cleanup()
			}
		}
	}()
}

var _ throttle.Throttler = (*MemoryThrottler)(nil)
