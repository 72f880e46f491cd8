package httpx_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBreaker(name string, timeout time.Duration, maxFailures uint32) httpx.CircuitBreaker {
	return httpx.NewCircuitBreaker(httpx.BreakerSettings{
		Name:        name,
		Timeout:     timeout,
		MaxFailures: maxFailures,
	}, logrus.New())
}

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	breaker := newBreaker("success-test", 30*time.Second, 3)

	err := breaker.Execute(func() error {
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "closed", breaker.State())
}

func TestCircuitBreaker_Execute_WrapsFailure(t *testing.T) {
	breaker := newBreaker("failure-test", 30*time.Second, 3)
	testError := errors.New("redis down")

	err := breaker.Execute(func() error {
		return testError
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, testError)
	assert.Contains(t, err.Error(), "failure-test")
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	breaker := newBreaker("open-test", 30*time.Second, 2)

	for i := 0; i < 2; i++ {
		assert.Error(t, breaker.Execute(func() error { return errors.New("failure") }))
	}

	called := false
	err := breaker.Execute(func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)
	assert.Equal(t, "open", breaker.State())
}

func TestCircuitBreaker_RecoversAfterTimeout(t *testing.T) {
	breaker := newBreaker("recovery-test", 50*time.Millisecond, 1)

	assert.Error(t, breaker.Execute(func() error { return errors.New("trigger failure") }))

	time.Sleep(100 * time.Millisecond)

	assert.NoError(t, breaker.Execute(func() error { return nil }))
	assert.Equal(t, "closed", breaker.State())
}

func TestCircuitBreaker_ConcurrentAccess(t *testing.T) {
	breaker := newBreaker("concurrent-test", 30*time.Second, 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = breaker.Execute(func() error {
				if id%2 == 0 {
					return nil
				}
				return errors.New("failure")
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "closed", breaker.State())
}
