package rate_limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	assert.True(t, rl.IsAllowed("a"))
	assert.Equal(t, 1, rl.GetRemainingRequests("a"))
	assert.True(t, rl.IsAllowed("a"))
	assert.False(t, rl.IsAllowed("a"))
	assert.Equal(t, 0, rl.GetRemainingRequests("a"))

	assert.True(t, rl.IsAllowed("b"), "keys are limited independently")

	current = current.Add(61 * time.Second)
	assert.Equal(t, 2, rl.GetRemainingRequests("a"))
	assert.True(t, rl.IsAllowed("a"))
}

func TestRateLimiterEvictsIdleKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	defer rl.Stop()

	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	rl.IsAllowed("a")
	current = current.Add(2 * time.Second)

	rl.mu.Lock()
	rl.evictExpired()
	_, exists := rl.requests["a"]
	rl.mu.Unlock()

	assert.False(t, exists)
}
