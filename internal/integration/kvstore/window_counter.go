// Package kvstore implements the Redis-backed stores.
package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// WindowCounter counts hits per key in fixed windows using INCR and EXPIRE.
type WindowCounter struct {
	client *redis.Client
}

// NewWindowCounter creates a new WindowCounter.
func NewWindowCounter(client *redis.Client) *WindowCounter {
	return &WindowCounter{client: client}
}

// Hit records one hit for key and returns the count in the current window and
// the time left until the window resets. INCR and PTTL run in one MULTI/EXEC.
func (w *WindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	fullKey := rateLimitPrefix + key

	var (
		incr *redis.IntCmd
		pttl *redis.DurationCmd
	)
	_, err := w.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, fullKey)
		pttl = pipe.PTTL(ctx, fullKey)
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	count, ttl := incr.Val(), pttl.Val()
	if ttl < 0 {
		// new window, or a key that lost its expiry
		if err := w.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("failed to set rate limit window: %w", err)
		}
		ttl = window
	}
	return count, ttl, nil
}
