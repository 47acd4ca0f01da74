package ratelimit

import (
	"sync"
	"time"
)

// evictThreshold is the map size above which Allow sweeps out entries
// whose window has long expired. The map is otherwise unbounded.
const evictThreshold = 10000

type window struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter is a process-local fixed window counter. State does not
// survive a restart; this is a soft abuse deterrent, not a security
// boundary.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*window
	size    time.Duration
	max     int

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewMemoryLimiter(size time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*window),
		size:    size,
		max:     max,
		now:     time.Now,
	}
}

// Allow reports whether the action keyed by key may proceed, consuming
// one slot of the current window when it does.
func (l *MemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, exists := l.entries[key]
	if !exists || now.Sub(entry.windowStart) >= l.size {
		if len(l.entries) > evictThreshold {
			l.evictStale(now)
		}
		l.entries[key] = &window{count: 1, windowStart: now}
		return true
	}

	if entry.count >= l.max {
		return false
	}

	entry.count++
	return true
}

// evictStale drops entries whose window ended more than one full window
// ago. Caller holds the lock.
func (l *MemoryLimiter) evictStale(now time.Time) {
	for key, entry := range l.entries {
		if now.Sub(entry.windowStart) >= 2*l.size {
			delete(l.entries, key)
		}
	}
}
