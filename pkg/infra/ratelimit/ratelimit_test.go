package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newLimiter(clock *fakeClock) *ratelimit.Limiter {
	return ratelimit.NewLimiter(
		ratelimit.NewMemoryStore(),
		ratelimit.DefaultPolicy(),
		&ratelimit.LimiterOpts{TimeProvider: clock.Now},
	)
}

func TestLimiter_AuthenticatedFixedWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	limiter := newLimiter(clock)
	ctx := context.Background()

	for _, expected := range []int{2, 1, 0} {
		decision, err := limiter.CheckRateLimit(ctx, "user:42", true)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, expected, decision.Remaining)
		clock.Advance(time.Second)
	}

	decision, err := limiter.CheckRateLimit(ctx, "user:42", true)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 0, decision.Remaining)
	assert.Equal(t, 3, decision.Limit)
	assert.Equal(t, 57*time.Second+time.Millisecond, decision.RetryAfter)

	clock.Advance(58 * time.Second)
	decision, err = limiter.CheckRateLimit(ctx, "user:42", true)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 2, decision.Remaining)
}

func TestLimiter_AuthenticatedIsStricterThanAnonymous(t *testing.T) {
	policy := ratelimit.DefaultPolicy()
	assert.Equal(t, 3, policy.LimitFor(true))
	assert.Equal(t, 5, policy.LimitFor(false))

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(clock)
	ctx := context.Background()

	allowed := 0
	for i := 0; i < 10; i++ {
		decision, err := limiter.CheckRateLimit(ctx, "ip:10.0.0.1", false)
		require.NoError(t, err)
		if decision.Allowed {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestLimiter_WindowBoundaryIsExclusive(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(clock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.CheckRateLimit(ctx, "user:1", true)
		require.NoError(t, err)
	}

	clock.Advance(60 * time.Second)
	decision, err := limiter.CheckRateLimit(ctx, "user:1", true)
	require.NoError(t, err)
	assert.False(t, decision.Allowed, "exactly one window later is still the same window")

	clock.Advance(time.Millisecond)
	decision, err = limiter.CheckRateLimit(ctx, "user:1", true)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestLimiter_RejectionDoesNotExtendWindow(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := ratelimit.NewMemoryStore()
	limiter := ratelimit.NewLimiter(store, ratelimit.DefaultPolicy(), &ratelimit.LimiterOpts{TimeProvider: clock.Now})
	ctx := context.Background()
	start := clock.now

	for i := 0; i < 8; i++ {
		_, err := limiter.CheckRateLimit(ctx, "user:1", true)
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	window, ok := store.Get("user:1")
	require.True(t, ok)
	assert.Equal(t, 3, window.Count)
	assert.Equal(t, start, window.Start)
}

func TestLimiter_KeyIsolation(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(clock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.CheckRateLimit(ctx, "user:a", true)
		require.NoError(t, err)
	}
	blocked, err := limiter.CheckRateLimit(ctx, "user:a", true)
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	other, err := limiter.CheckRateLimit(ctx, "user:b", true)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
	assert.Equal(t, 2, other.Remaining)
}

func TestLimiter_Reset(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiter := newLimiter(clock)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := limiter.CheckRateLimit(ctx, "user:a", true)
		require.NoError(t, err)
	}
	require.NoError(t, limiter.Reset(ctx, "user:a"))

	decision, err := limiter.CheckRateLimit(ctx, "user:a", true)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 2, decision.Remaining)
}

func TestLimiter_EmptyKey(t *testing.T) {
	limiter := newLimiter(&fakeClock{now: time.Now()})

	_, err := limiter.CheckRateLimit(context.Background(), "", false)
	assert.ErrorIs(t, err, ratelimit.ErrEmptyKey)
	assert.ErrorIs(t, limiter.Reset(context.Background(), ""), ratelimit.ErrEmptyKey)
}

func TestLimiter_StoreError(t *testing.T) {
	store := new(mocks.MockStore)
	storeErr := errors.New("store down")
	store.On("Hit", mock.Anything, "user:1", 3, time.Minute, mock.Anything).Return(nil, storeErr)

	limiter := ratelimit.NewLimiter(store, ratelimit.DefaultPolicy(), nil)

	_, err := limiter.CheckRateLimit(context.Background(), "user:1", true)
	assert.ErrorIs(t, err, storeErr)
	store.AssertExpectations(t)
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, ratelimit.DefaultPolicy().Validate())
	assert.Error(t, ratelimit.Policy{Window: 0, AuthenticatedLimit: 1, AnonymousLimit: 1}.Validate())
	assert.Error(t, ratelimit.Policy{Window: time.Second, AuthenticatedLimit: 0, AnonymousLimit: 1}.Validate())
}
