package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scriptSHA = redis.NewScript(ratelimit.WindowScript).Hash()

func TestRedisStore_Hit_Allowed(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := ratelimit.NewRedisStore(client, "")
	now := time.UnixMilli(1_700_000_000_000)

	mock.ExpectEvalSha(scriptSHA, []string{"snippetgate:ratelimit:user:1"}, now.UnixMilli(), int64(60000), int64(3)).
		SetVal([]interface{}{int64(1), int64(2), now.Add(-time.Second).UnixMilli()})

	res, err := store.Hit(context.Background(), "user:1", 3, time.Minute, now)

	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Window.Count)
	assert.Equal(t, now.Add(-time.Second).UnixMilli(), res.Window.Start.UnixMilli())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Hit_Rejected(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := ratelimit.NewRedisStore(client, "test:")
	now := time.UnixMilli(1_700_000_000_000)

	mock.ExpectEvalSha(scriptSHA, []string{"test:ip:10.0.0.1"}, now.UnixMilli(), int64(60000), int64(5)).
		SetVal([]interface{}{int64(0), int64(5), now.Add(-10 * time.Second).UnixMilli()})

	limiter := ratelimit.NewLimiter(store, ratelimit.DefaultPolicy(), &ratelimit.LimiterOpts{
		TimeProvider: func() time.Time { return now },
	})
	decision, err := limiter.CheckRateLimit(context.Background(), "ip:10.0.0.1", false)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 0, decision.Remaining)
	assert.Equal(t, 50*time.Second+time.Millisecond, decision.RetryAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Hit_LoadsScriptOnNoScript(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := ratelimit.NewRedisStore(client, "")
	now := time.UnixMilli(1_700_000_000_000)
	keys := []string{"snippetgate:ratelimit:user:9"}

	mock.ExpectEvalSha(scriptSHA, keys, now.UnixMilli(), int64(60000), int64(3)).
		SetErr(errors.New("NOSCRIPT No matching script. Please use EVAL."))
	mock.ExpectEval(ratelimit.WindowScript, keys, now.UnixMilli(), int64(60000), int64(3)).
		SetVal([]interface{}{int64(1), int64(1), now.UnixMilli()})

	res, err := store.Hit(context.Background(), "user:9", 3, time.Minute, now)

	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Window.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Hit_Errors(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	keys := []string{"snippetgate:ratelimit:user:1"}

	t.Run("redis error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectEvalSha(scriptSHA, keys, now.UnixMilli(), int64(60000), int64(3)).
			SetErr(errors.New("connection refused"))

		_, err := ratelimit.NewRedisStore(client, "").Hit(context.Background(), "user:1", 3, time.Minute, now)
		assert.Error(t, err)
	})

	t.Run("malformed reply", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectEvalSha(scriptSHA, keys, now.UnixMilli(), int64(60000), int64(3)).
			SetVal([]interface{}{int64(1)})

		_, err := ratelimit.NewRedisStore(client, "").Hit(context.Background(), "user:1", 3, time.Minute, now)
		assert.Error(t, err)
	})
}

func TestRedisStore_Reset(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := ratelimit.NewRedisStore(client, "")

	mock.ExpectDel("snippetgate:ratelimit:user:1").SetVal(1)

	require.NoError(t, store.Reset(context.Background(), "user:1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
