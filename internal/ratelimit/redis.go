package ratelimit

import (
	"context"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// RedisLimiter is a fixed-window limiter using Redis INCR/EXPIRE, shared by
// every replica pointed at the same Redis.
// key format: rl:<window_seconds>:<key>
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisLimiter connects to Redis and pings it. Callers fall back to an
// in-memory limiter when this fails.
func NewRedisLimiter(addr, password string, db, limit int, window time.Duration) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, oops.In("ratelimit").With("addr", addr).Wrapf(err, "ping redis")
	}
	return &RedisLimiter{client: client, limit: limit, window: window}, nil
}

// Allow counts one action for key. Errors leave the decision to the caller.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	rk := "rl:" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + key

	val, err := l.client.Incr(ctx, rk).Result()
	if err != nil {
		return false, oops.In("ratelimit").With("key", key).Wrapf(err, "incr")
	}
	if val == 1 {
		// first increment, set expiry
		if err := l.client.Expire(ctx, rk, l.window).Err(); err != nil {
			return false, oops.In("ratelimit").With("key", key).Wrapf(err, "expire")
		}
	}

	if val > int64(l.limit) {
		RLBlocked.WithLabelValues(endpoint(key)).Inc()
		return false, nil
	}
	RLRequests.WithLabelValues(endpoint(key)).Inc()
	return true, nil
}

func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
