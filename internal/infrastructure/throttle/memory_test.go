package throttle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain/throttle"
)

func TestMemoryThrottler_FixedWindow(t *testing.T) {
	ctx := context.Background()
	limit, err := throttle.New(60, 3)
	require.NoError(t, err)

	th := NewMemoryThrottler()

	for i := 0; i < 3; i++ {
		allowed, err := th.IsAllowed(ctx, "client-1", limit)
		require.NoError(t, err)
		assert.True(t, allowed)
		require.NoError(t, th.TrackRequest(ctx, "client-1", limit))
	}

	// Over the limit: denied, not an error.
	allowed, err := th.IsAllowed(ctx, "client-1", limit)
	require.NoError(t, err)
	assert.False(t, allowed)

	remaining, err := th.GetRemainingRequests(ctx, "client-1", limit)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	// Other identifiers are unaffected.
	allowed, err = th.IsAllowed(ctx, "client-2", limit)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryThrottler_WindowExpiry(t *testing.T) {
	ctx := context.Background()
	limit, err := throttle.New(60, 2)
	require.NoError(t, err)

	now := time.Now()
	th := NewMemoryThrottler()
	th.now = func() time.Time { return now }

	require.NoError(t, th.TrackRequest(ctx, "client-1", limit))
	require.NoError(t, th.TrackRequest(ctx, "client-1", limit))

	allowed, err := th.IsAllowed(ctx, "client-1", limit)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Advance past the window: counter resets.
	now = now.Add(limit.Window() + time.Second)

	allowed, err = th.IsAllowed(ctx, "client-1", limit)
	require.NoError(t, err)
	assert.True(t, allowed)

	remaining, err := th.GetRemainingRequests(ctx, "client-1", limit)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
}

func TestMemoryThrottler_ConcurrentTracking(t *testing.T) {
	ctx := context.Background()
	limit, err := throttle.New(60, 1000)
	require.NoError(t, err)

	th := NewMemoryThrottler()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = th.TrackRequest(ctx, "shared", limit)
		}()
	}
	wg.Wait()

	remaining, err := th.GetRemainingRequests(ctx, "shared", limit)
	require.NoError(t, err)
	assert.Equal(t, limit.MaxRequests()-n, remaining, "every concurrent request must be counted exactly once")
}

func TestMemoryThrottler_Reset(t *testing.T) {
	ctx := context.Background()
	limit := throttle.Default()

	th := NewMemoryThrottler()

	for i := 0; i < limit.MaxRequests(); i++ {
		require.NoError(t, th.TrackRequest(ctx, "client-1", limit))
	}

	allowed, err := th.IsAllowed(ctx, "client-1", limit)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, th.ResetThrottling(ctx, "client-1"))

	allowed, err = th.IsAllowed(ctx, "client-1", limit)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryThrottler_Cleanup(t *testing.T) {
	ctx := context.Background()
	limit := throttle.Default()

	th := NewMemoryThrottler(WithIdleTTL(time.Minute))

	now := time.Now()
	th.now = func() time.Time { return now }

	require.NoError(t, th.TrackRequest(ctx, "stale", limit))

	now = now.Add(2 * time.Minute)
	th.Cleanup()

	th.mu.Lock()
	_, ok := th.entries["stale"]
	th.mu.Unlock()
	assert.False(t, ok, "idle entry should be removed")
}

func TestBurstLimiter_Allow(t *testing.T) {
	b := NewBurstLimiter(1, 2)

	assert.True(t, b.Allow("client-1"))
	assert.True(t, b.Allow("client-1"))
	assert.False(t, b.Allow("client-1"), "burst exhausted")

	// Separate identifier has its own bucket.
	assert.True(t, b.Allow("client-2"))
}
