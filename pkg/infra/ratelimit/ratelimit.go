package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/infra/prometheus"
)

const (
	DefaultWindow             = 60 * time.Second
	DefaultAuthenticatedLimit = 3
	DefaultAnonymousLimit     = 5

	TierAuthenticated = "authenticated"
	TierAnonymous     = "anonymous"
)

var ErrEmptyKey = errors.New("rate limit key is required")

// Policy holds the per-tier limits of a fixed window. Authenticated callers
// get the stricter limit by default.
type Policy struct {
	Window             time.Duration
	AuthenticatedLimit int
	AnonymousLimit     int
}

func DefaultPolicy() Policy {
	return Policy{
		Window:             DefaultWindow,
		AuthenticatedLimit: DefaultAuthenticatedLimit,
		AnonymousLimit:     DefaultAnonymousLimit,
	}
}

func (p Policy) LimitFor(authenticated bool) int {
	if authenticated {
		return p.AuthenticatedLimit
	}
	return p.AnonymousLimit
}

func (p Policy) Validate() error {
	if p.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	if p.AuthenticatedLimit <= 0 || p.AnonymousLimit <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	return nil
}

// Window is the state of one identity key.
type Window struct {
	Count int
	Start time.Time
}

// HitResult is the outcome of one atomic step on a key's window.
type HitResult struct {
	Allowed bool
	Window  Window
}

// Store applies a fixed-window step per key. Implementations must make the
// read-modify-write of a single key atomic.
type Store interface {
	Hit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (HitResult, error)
	Reset(ctx context.Context, key string) error
}

// step is the fixed-window transition shared by the in-process stores and
// mirrored by the Redis script. A rejected hit leaves the window untouched.
func step(current *Window, limit int, window time.Duration, now time.Time) (Window, bool) {
	if current == nil || now.Sub(current.Start) > window {
		return Window{Count: 1, Start: now}, true
	}
	if current.Count >= limit {
		return *current, false
	}
	return Window{Count: current.Count + 1, Start: current.Start}, true
}

type Decision struct {
	Allowed    bool          `json:"allowed"`
	Remaining  int           `json:"remaining"`
	Limit      int           `json:"limit"`
	RetryAfter time.Duration `json:"-"`
}

type LimiterOpts struct {
	TimeProvider func() time.Time
}

type Limiter struct {
	store        Store
	policy       Policy
	timeProvider func() time.Time
}

func NewLimiter(store Store, policy Policy, opts *LimiterOpts) *Limiter {
	timeProvider := time.Now
	if opts != nil && opts.TimeProvider != nil {
		timeProvider = opts.TimeProvider
	}
	return &Limiter{
		store:        store,
		policy:       policy,
		timeProvider: timeProvider,
	}
}

func (l *Limiter) Policy() Policy {
	return l.policy
}

// CheckRateLimit consumes one request from key's window.
func (l *Limiter) CheckRateLimit(ctx context.Context, key string, authenticated bool) (Decision, error) {
	if key == "" {
		return Decision{}, ErrEmptyKey
	}
	limit := l.policy.LimitFor(authenticated)
	now := l.timeProvider()

	res, err := l.store.Hit(ctx, key, limit, l.policy.Window, now)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to check rate limit: %w", err)
	}

	decision := Decision{Allowed: res.Allowed, Limit: limit}
	if res.Allowed {
		decision.Remaining = max(0, limit-res.Window.Count)
	} else {
		// The window resets once strictly more than Window has elapsed.
		decision.RetryAfter = res.Window.Start.Add(l.policy.Window).Sub(now) + time.Millisecond
	}

	prometheus.RateLimitDecisionsTotal.WithLabelValues(tier(authenticated), result(res.Allowed)).Inc()
	return decision, nil
}

func (l *Limiter) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := l.store.Reset(ctx, key); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

func tier(authenticated bool) string {
	if authenticated {
		return TierAuthenticated
	}
	return TierAnonymous
}

func result(allowed bool) string {
	if allowed {
		return "allowed"
	}
	return "rejected"
}
