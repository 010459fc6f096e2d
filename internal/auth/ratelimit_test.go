package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterDeniesOverLimit(t *testing.T) {
	rl, err := NewRateLimiter("test", 3, time.Minute, 16)
	require.NoError(t, err)

	wantAllowed := []bool{true, true, true, false, false}
	wantRemaining := []int{2, 1, 0, 0, 0}

	for i := range wantAllowed {
		d := rl.Check("10.0.0.1")
		assert.Equal(t, wantAllowed[i], d.Allowed, "request %d", i+1)
		assert.Equal(t, wantRemaining[i], d.Remaining, "request %d", i+1)
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl, err := NewRateLimiter("test", 1, time.Minute, 16)
	require.NoError(t, err)

	assert.True(t, rl.Check("10.0.0.1").Allowed)
	assert.False(t, rl.Check("10.0.0.1").Allowed)

	// A different client is unaffected
	assert.True(t, rl.Check("10.0.0.2").Allowed)
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl, err := NewRateLimiter("test", 2, 50*time.Millisecond, 16)
	require.NoError(t, err)

	assert.True(t, rl.Check("k").Allowed)
	assert.True(t, rl.Check("k").Allowed)
	assert.False(t, rl.Check("k").Allowed)

	time.Sleep(60 * time.Millisecond)

	d := rl.Check("k")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
}

func TestRateLimiterBoundsTrackedKeys(t *testing.T) {
	rl, err := NewRateLimiter("test", 10, time.Minute, 8)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		rl.Check(fmt.Sprintf("client-%d", i))
	}

	// Old keys are evicted; memory stays bounded under key churn
	assert.Equal(t, 8, rl.Len())
}

func TestRateLimiterName(t *testing.T) {
	rl, err := NewRateLimiter("auth", 10, time.Minute, 16)
	require.NoError(t, err)
	assert.Equal(t, "auth", rl.Name())
}
