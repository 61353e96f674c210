package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	limiter := NewLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		result := limiter.Allow("ip:10.0.0.1")
		require.True(t, result.Allowed, "request %d should be allowed", i+1)
		require.Equal(t, 3, result.Limit)
		require.Equal(t, 2-i, result.Remaining)
	}

	result := limiter.Allow("ip:10.0.0.1")
	require.False(t, result.Allowed)
	require.Zero(t, result.Remaining)
	require.Positive(t, result.RetryAfter)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(1, time.Minute)

	require.True(t, limiter.Allow("ip:10.0.0.1").Allowed)
	require.False(t, limiter.Allow("ip:10.0.0.1").Allowed)
	require.True(t, limiter.Allow("ip:10.0.0.2").Allowed)
}

func TestLimiterWindowSlides(t *testing.T) {
	now := time.Now()
	limiter := NewLimiter(2, time.Minute)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.Allow("user:alice").Allowed)
	require.True(t, limiter.Allow("user:alice").Allowed)
	require.False(t, limiter.Allow("user:alice").Allowed)

	// Once the oldest request ages out, capacity frees up.
	now = now.Add(61 * time.Second)
	require.True(t, limiter.Allow("user:alice").Allowed)
}

func TestLimiterReset(t *testing.T) {
	limiter := NewLimiter(1, time.Minute)

	require.True(t, limiter.Allow("ip:10.0.0.1").Allowed)
	require.False(t, limiter.Allow("ip:10.0.0.1").Allowed)

	limiter.Reset("ip:10.0.0.1")
	require.True(t, limiter.Allow("ip:10.0.0.1").Allowed)
}
