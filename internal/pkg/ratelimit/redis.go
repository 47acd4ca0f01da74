package ratelimit

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is the shared-counter variant for multi-instance
// deployments. A Redis failure fails open: rate limiting is a
// deterrent, losing it must never take the contact form down with it.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	size   time.Duration
	max    int
}

func NewRedisLimiter(client *redis.Client, prefix string, size time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		size:   size,
		max:    max,
	}
}

func (l *RedisLimiter) Allow(key string) bool {
	ctx := context.Background()
	redisKey := "ratelimit:" + l.prefix + ":" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("rate limiter redis error, allowing request: %v", err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.size).Err(); err != nil {
			log.Printf("rate limiter expire error: %v", err)
		}
	}
	if count > int64(l.max) {
		// Undo the consume so denied calls do not extend the burst.
		l.client.Decr(ctx, redisKey)
		return false
	}
	return true
}
