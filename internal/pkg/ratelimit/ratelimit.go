package ratelimit

import (
	"time"

	"github.com/LenaVoss/lenavoss-web/internal/pkg/cache"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/env"
)

// RateLimiter gates a keyed action with a fixed window counter. Allow is
// check-and-consume: a denied call does not increment the counter.
// Callers that guard a request with several keys (email and ip) must
// require every key to pass.
type RateLimiter interface {
	Allow(key string) bool
}

// IPKey builds the per-address key so email and address limits never collide.
func IPKey(ip string) string {
	return "ip:" + ip
}

// New returns the limiter configured via RATE_LIMIT_BACKEND. The memory
// limiter is per-process; deployments running more than one instance
// should switch to the redis backend so all instances share one counter.
func New(prefix string, window time.Duration, max int) RateLimiter {
	if env.GetEnv("RATE_LIMIT_BACKEND", "memory") == "redis" {
		return NewRedisLimiter(cache.GetClient(), prefix, window, max)
	}
	return NewMemoryLimiter(window, max)
}
