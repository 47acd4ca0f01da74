package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(size time.Duration, max int) (*MemoryLimiter, *time.Time) {
	l := NewMemoryLimiter(size, max)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestMemoryLimiterAllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 3)

	assert.True(t, l.Allow("a@x.com"))
	assert.True(t, l.Allow("a@x.com"))
	assert.True(t, l.Allow("a@x.com"))
	assert.False(t, l.Allow("a@x.com"))
}

func TestMemoryLimiterDenialDoesNotConsume(t *testing.T) {
	l, clock := newTestLimiter(time.Minute, 1)

	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	// After the window the key starts fresh regardless of denied calls.
	*clock = clock.Add(time.Minute)
	assert.True(t, l.Allow("k"))
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	l, clock := newTestLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("k"))
	}
	assert.False(t, l.Allow("k"))

	*clock = clock.Add(59 * time.Second)
	assert.False(t, l.Allow("k"))

	*clock = clock.Add(time.Second)
	assert.True(t, l.Allow("k"))
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 1)

	assert.True(t, l.Allow("a@x.com"))
	assert.True(t, l.Allow(IPKey("203.0.113.7")))
	assert.False(t, l.Allow("a@x.com"))
	assert.False(t, l.Allow(IPKey("203.0.113.7")))
}

func TestMemoryLimiterVisitGateVariant(t *testing.T) {
	// The visit tracker uses 1 per 5 minutes per raw address.
	l, clock := newTestLimiter(5*time.Minute, 1)

	assert.True(t, l.Allow(IPKey("198.51.100.4")))
	*clock = clock.Add(2 * time.Minute)
	assert.False(t, l.Allow(IPKey("198.51.100.4")))
	*clock = clock.Add(3 * time.Minute)
	assert.True(t, l.Allow(IPKey("198.51.100.4")))
}

func TestMemoryLimiterEvictsStaleEntries(t *testing.T) {
	l, clock := newTestLimiter(time.Minute, 1)

	for i := 0; i < evictThreshold+1; i++ {
		l.Allow(fmt.Sprintf("key-%d", i))
	}
	assert.Greater(t, len(l.entries), evictThreshold)

	*clock = clock.Add(3 * time.Minute)
	l.Allow("fresh-key")
	assert.LessOrEqual(t, len(l.entries), 2)
}
