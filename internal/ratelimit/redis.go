package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter stores each action as a member of a sorted set scored by
// its unix-millisecond timestamp: count the trailing window with ZCOUNT,
// record with ZADD, drop the expired prefix with ZREMRANGEBYSCORE, and
// cap key lifetime with EXPIRE.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		prefix: "rate-limit",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, identifier string, max int, window time.Duration) (Result, error) {
	if l == nil || l.client == nil {
		return Result{Allowed: true}, nil
	}
	if identifier == "" || max <= 0 || window <= 0 {
		return Result{Allowed: true}, nil
	}

	key := l.prefix + ":" + identifier
	now := time.Now()
	windowStart := now.Add(-window)

	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()

	count, err := l.client.ZCount(ctx, key,
		strconv.FormatInt(windowStart.UnixMilli(), 10),
		strconv.FormatInt(now.UnixMilli(), 10),
	).Result()
	if err != nil {
		// A broken limiter store must not take job posting down with it.
		return Result{Allowed: true}, err
	}

	if count >= int64(max) {
		retry := window
		oldest, err := l.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			oldestAt := time.UnixMilli(int64(oldest[0].Score))
			if d := oldestAt.Add(window).Sub(now); d > 0 {
				retry = d
			}
		}
		if retry < time.Second {
			retry = time.Second
		}
		return Result{Allowed: false, RetryAfter: retry}, nil
	}

	member := strconv.FormatInt(now.UnixNano(), 10)
	pipe := l.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixMilli(), 10))
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{Allowed: true}, err
	}

	return Result{Allowed: true}, nil
}
