package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const quotaKeyPrefix = "seva:quota:"

// QuotaLimiter allows a fixed number of events per key and window. Counters
// live in Redis so every instance shares them.
type QuotaLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewQuotaLimiter creates a limiter allowing limit events per window.
// A non-positive limit disables limiting.
func NewQuotaLimiter(client *redis.Client, limit int, window time.Duration) *QuotaLimiter {
	return &QuotaLimiter{client: client, limit: int64(limit), window: window}
}

// Allow records one event for key and reports whether it is within quota.
func (l *QuotaLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	redisKey := quotaKeyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("count quota: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("set quota window: %w", err)
		}
	}

	return count <= l.limit, nil
}
