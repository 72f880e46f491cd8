package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const DefaultKeyPrefix = "snippetgate:ratelimit:"

// WindowScript is the fixed-window step run atomically inside Redis.
// ARGV: now (ms), window (ms), limit. Returns {allowed, count, start_ms}.
const WindowScript = `
local state = redis.call('HMGET', KEYS[1], 'count', 'start')
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local count = tonumber(state[1])
local start = tonumber(state[2])
if (not count) or (not start) or (now - start > window) then
  redis.call('HSET', KEYS[1], 'count', 1, 'start', now)
  redis.call('PEXPIRE', KEYS[1], window + 1000)
  return {1, 1, now}
end
if count >= limit then
  return {0, count, start}
end
count = redis.call('HINCRBY', KEYS[1], 'count', 1)
return {1, count, start}
`

var windowScript = redis.NewScript(WindowScript)

// RedisStore shares windows across processes. Keys expire shortly after
// their window so stale identities do not accumulate.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Hit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (HitResult, error) {
	values, err := windowScript.Run(
		ctx,
		r.client,
		[]string{r.prefix + key},
		now.UnixMilli(),
		window.Milliseconds(),
		int64(limit),
	).Slice()
	if err != nil {
		return HitResult{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(values) != 3 {
		return HitResult{}, fmt.Errorf("unexpected rate limit script reply: %v", values)
	}
	allowed, ok1 := values[0].(int64)
	count, ok2 := values[1].(int64)
	startMs, ok3 := values[2].(int64)
	if !ok1 || !ok2 || !ok3 {
		return HitResult{}, fmt.Errorf("unexpected rate limit script reply: %v", values)
	}
	return HitResult{
		Allowed: allowed == 1,
		Window:  Window{Count: int(count), Start: time.UnixMilli(startMs)},
	}, nil
}

func (r *RedisStore) Reset(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete rate limit key: %w", err)
	}
	return nil
}
