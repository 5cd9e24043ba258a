package throttle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// BurstLimiter smooths short spikes with a per-identifier token bucket. It
// complements the fixed-window throttlers: the window caps sustained volume,
// the bucket caps instantaneous bursts.
type BurstLimiter struct {
	mu      sync.Mutex
	entries map[string]*burstEntry

	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type burstEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewBurstLimiter creates a limiter allowing rps requests per second with the
// given burst size per identifier.
func NewBurstLimiter(rps float64, burst int) *BurstLimiter {
	return &BurstLimiter{
		entries:      make(map[string]*burstEntry),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
}

// Allow reports whether the identifier may proceed right now.
func (b *BurstLimiter) Allow(identifier string) bool {
	return b.limiter(identifier).Allow()
}

func (b *BurstLimiter) limiter(identifier string) *rate.Limiter {
	now := time.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	if ent, ok := b.entries[identifier]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(b.rps, b.burst)
	b.entries[identifier] = &burstEntry{lim: lim, lastSeen: now}
	return lim
}

// Cleanup removes limiters not seen within the idle TTL.
func (b *BurstLimiter) Cleanup() {
	cutoff := time.Now().Add(-b.idleTTL)

	b.mu.Lock()
	defer b.mu.Unlock()

	for k, ent := range b.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(b.entries, k)
		}
	}
}

// StartJanitor starts a goroutine that periodically removes idle limiters.
// Stop it by cancelling the context.
func (b *BurstLimiter) StartJanitor(ctx context.Context) {
	if b.cleanupEvery <= 0 {
		return
	}

	ticker := time.NewTicker(b.cleanupEvery)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.Cleanup()
			}
		}
	}()
}
