// Package redis implements the bulk-operation rate limiter on Redis, so the
// limit holds across every API instance.
package redis

import (
	"context"
	"fmt"
	"time"

	"footprint/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter admits at most limit calls per key in each window. Windows
// are aligned to the epoch, so every instance agrees on where one ends.
type FixedWindowLimiter struct {
	client redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
	clock  kernel.Clock
}

func NewFixedWindowLimiter(
	client redis.Cmdable,
	prefix string,
	limit int,
	window time.Duration,
	clock kernel.Clock,
) (*FixedWindowLimiter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", limit)
	}
	if window < time.Second {
		return nil, fmt.Errorf("rate limit window must be at least one second, got %s", window)
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &FixedWindowLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		clock:  clock,
	}, nil
}

// Allow counts the call and reports whether it fits in the current window.
// Rejected calls still count.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.clock.Now().UnixNano() / int64(l.window)
	windowKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.Expire(ctx, windowKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter %s: %w", windowKey, err)
	}

	return incr.Val() <= l.limit, nil
}
