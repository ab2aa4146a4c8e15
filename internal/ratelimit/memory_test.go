package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "challenge:U1")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i)
	}

	blockedBefore := testutil.ToFloat64(RLBlocked.WithLabelValues("challenge"))
	ok, err := l.Allow(ctx, "challenge:U1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, blockedBefore+1, testutil.ToFloat64(RLBlocked.WithLabelValues("challenge")))

	// other keys are independent
	ok, _ = l.Allow(ctx, "challenge:U2")
	assert.True(t, ok)

	now = now.Add(time.Minute + time.Second)
	ok, _ = l.Allow(ctx, "challenge:U1")
	assert.True(t, ok)
}

func TestMemoryLimiter_SweepsExpiredKeys(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewMemoryLimiter(1, time.Second)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 1024; i++ {
		_, _ = l.Allow(ctx, "k:"+time.Duration(i).String())
	}
	require.Len(t, l.clients, 1024)

	now = now.Add(2 * time.Second)
	_, _ = l.Allow(ctx, "k:fresh")
	assert.Len(t, l.clients, 1)
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "challenge", endpoint("challenge:123"))
	assert.Equal(t, "plain", endpoint("plain"))
}
