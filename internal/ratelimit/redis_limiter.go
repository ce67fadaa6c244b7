package ratelimit

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter shares fixed-window counters across instances. The
// window key expires with the window, so counters clean themselves up.
type RedisLimiter struct {
	client rueidis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client rueidis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	key := r.prefix + clientKey

	incrCmd := r.client.B().Incr().Key(key).Build()
	count, err := r.client.Do(ctx, incrCmd).AsInt64()
	if err != nil {
		return false, err
	}

	if count == 1 {
		expireCmd := r.client.B().Expire().Key(key).Seconds(int64(r.window.Seconds())).Build()
		if err := r.client.Do(ctx, expireCmd).Error(); err != nil {
			return false, err
		}
	}

	return count <= int64(r.limit), nil
}
