package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttler is a fixed-window request limiter backed by Redis.
// Key format: throttle:<client key>:<window start unix>
type Throttler struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewThrottler creates a Throttler allowing limit requests per window.
func NewThrottler(client *redis.Client, limit int, window time.Duration) *Throttler {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Throttler{client: client, limit: int64(limit), window: window}
}

// Allow counts the request against the current window and reports whether it
// is within the limit. INCR plus first-hit EXPIRE keeps the window bounded.
func (t *Throttler) Allow(ctx context.Context, key string) (bool, error) {
	k := t.key(key, time.Now())
	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return n <= t.limit, nil
}

func (t *Throttler) key(key string, now time.Time) string {
	window := now.Unix() - now.Unix()%int64(t.window.Seconds())
	return fmt.Sprintf("throttle:%s:%d", key, window)
}
