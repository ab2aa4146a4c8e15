package ratelimit

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisLimiterIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	pass := os.Getenv("REDIS_PASSWORD")
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			db = n
		}
	}

	l, err := NewRedisLimiter(addr, pass, db, 2, 2*time.Second)
	require.NoError(t, err)
	defer l.Close()

	ctx := context.Background()
	key := "test:" + uuid.NewString()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	time.Sleep(2*time.Second + 200*time.Millisecond)
	ok, err = l.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisLimiter_Unreachable(t *testing.T) {
	_, err := NewRedisLimiter("127.0.0.1:1", "", 0, 1, time.Second)
	assert.Error(t, err)
}
