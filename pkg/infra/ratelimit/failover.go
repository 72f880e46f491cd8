package ratelimit

import (
	"context"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

// FailoverStore limits through primary behind a circuit breaker and falls
// back to a local store when primary fails. Callers are never let through
// unlimited; they are limited per process until primary recovers.
type FailoverStore struct {
	primary  Store
	fallback Store
	breaker  httpx.CircuitBreaker
	logger   *logrus.Logger
}

func NewFailoverStore(primary, fallback Store, breaker httpx.CircuitBreaker, logger *logrus.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
		logger:   logger,
	}
}

func (f *FailoverStore) Hit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (HitResult, error) {
	var res HitResult
	err := f.breaker.Execute(func() error {
		var err error
		res, err = f.primary.Hit(ctx, key, limit, window, now)
		return err
	})
	if err == nil {
		return res, nil
	}
	f.logger.WithError(err).WithField("breaker_state", f.breaker.State()).
		Warn("shared rate limit store unavailable, using local store")
	return f.fallback.Hit(ctx, key, limit, window, now)
}

// Reset clears key in both stores. A primary failure is logged, not
// returned: while primary is down the local window is the one enforced, and
// the shared key expires with its TTL.
func (f *FailoverStore) Reset(ctx context.Context, key string) error {
	if err := f.fallback.Reset(ctx, key); err != nil {
		return err
	}
	err := f.breaker.Execute(func() error {
		return f.primary.Reset(ctx, key)
	})
	if err != nil {
		f.logger.WithError(err).WithFields(logrus.Fields{
			"key":           key,
			"breaker_state": f.breaker.State(),
		}).Warn("shared rate limit store unavailable, reset applied locally only")
	}
	return nil
}
