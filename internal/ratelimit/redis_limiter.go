package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter counts requests per key in a fixed window shared across
// instances. The counter key carries the window start so a new window
// begins with a fresh counter; the key expires on its own.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
}

func NewRedisLimiter(client rueidis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	windowStart := time.Now().Unix() / int64(window.Seconds())
	counterKey := fmt.Sprintf("%s:%s:%d", r.prefix, key, windowStart)

	count, err := r.client.Do(
		ctx,
		r.client.B().Incr().Key(counterKey).Build(),
	).AsInt64()
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := r.client.Do(
			ctx,
			r.client.B().Expire().Key(counterKey).Seconds(int64(window.Seconds())+1).Build(),
		).Error(); err != nil {
			return false, err
		}
	}

	return count <= int64(limit), nil
}
