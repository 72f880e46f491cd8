package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Hit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (ratelimit.HitResult, error) {
	args := m.Called(ctx, key, limit, window, now)
	res, ok := args.Get(0).(ratelimit.HitResult)
	if !ok && args.Get(0) != nil {
		return ratelimit.HitResult{}, fmt.Errorf("expected ratelimit.HitResult, got %T", args.Get(0))
	}
	return res, args.Error(1)
}

func (m *MockStore) Reset(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
