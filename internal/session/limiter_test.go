package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaLimiter(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewQuotaLimiter(client, 2, time.Hour)
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		ok, err := limiter.Allow(ctx, "voice:u1")
		require.NoError(t, err)
		assert.Equal(t, want, ok, "call %d", i+1)
	}

	ok, err := limiter.Allow(ctx, "voice:u2")
	require.NoError(t, err)
	assert.True(t, ok, "quota is per key")

	assert.Equal(t, time.Hour, mr.TTL(quotaKeyPrefix+"voice:u1"))

	mr.FastForward(time.Hour + time.Second)

	ok, err = limiter.Allow(ctx, "voice:u1")
	require.NoError(t, err)
	assert.True(t, ok, "window resets")
}

func TestQuotaLimiterDisabled(t *testing.T) {
	_, client := newTestRedis(t)
	limiter := NewQuotaLimiter(client, 0, time.Hour)

	for range 5 {
		ok, err := limiter.Allow(context.Background(), "voice:u1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
