package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces limiter keys in Redis.
const KeyPrefix = "focloireacht:rl:"

// Redis is a sliding-window log limiter on a sorted set per (rule, key).
// Scores are request times in milliseconds.
type Redis struct {
	rdb goredis.Cmdable
	now func() time.Time
}

// NewRedis creates a Redis-backed limiter.
func NewRedis(rdb goredis.Cmdable) *Redis {
	return &Redis{rdb: rdb, now: time.Now}
}

// Allow records the request and reports whether it fits the rule's window.
// Denied requests are removed again so they do not extend the lockout.
func (l *Redis) Allow(ctx context.Context, key string, rule Rule) (Decision, error) {
	now := l.now()
	nowMs := now.UnixMilli()
	windowStart := nowMs - rule.Window.Milliseconds()
	redisKey := KeyPrefix + rule.Name + ":" + key
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	var (
		card   *goredis.IntCmd
		oldest *goredis.ZSliceCmd
	)
	_, err := l.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "-inf", "("+strconv.FormatInt(windowStart, 10))
		pipe.ZAdd(ctx, redisKey, goredis.Z{Score: float64(nowMs), Member: member})
		card = pipe.ZCard(ctx, redisKey)
		oldest = pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
		pipe.PExpire(ctx, redisKey, rule.Window)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit redis %s: %w", rule.Name, err)
	}

	count := int(card.Val())
	resetAt := now.Add(rule.Window)
	if zs := oldest.Val(); len(zs) > 0 {
		resetAt = time.UnixMilli(int64(zs[0].Score)).Add(rule.Window)
	}

	if count > rule.Limit {
		if err := l.rdb.ZRem(ctx, redisKey, member).Err(); err != nil {
			return Decision{}, fmt.Errorf("ratelimit redis %s: undo: %w", rule.Name, err)
		}
		return Decision{Allowed: false, Limit: rule.Limit, Remaining: 0, ResetAt: resetAt}, nil
	}

	return Decision{
		Allowed:   true,
		Limit:     rule.Limit,
		Remaining: remaining(rule.Limit, count),
		ResetAt:   resetAt,
	}, nil
}
