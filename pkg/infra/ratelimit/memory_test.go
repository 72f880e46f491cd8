package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ConcurrentHitsNeverExceedLimit(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	now := time.Unix(1_700_000_000, 0)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := store.Hit(ctx, "ip:1.2.3.4", 5, time.Minute, now)
			assert.NoError(t, err)
			if res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
	window, ok := store.Get("ip:1.2.3.4")
	require.True(t, ok)
	assert.Equal(t, 5, window.Count)
}

func TestMemoryStore_Sweep(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	start := time.Unix(1_700_000_000, 0)
	ctx := context.Background()

	_, err := store.Hit(ctx, "old", 3, time.Minute, start)
	require.NoError(t, err)
	_, err = store.Hit(ctx, "fresh", 3, time.Minute, start.Add(30*time.Second))
	require.NoError(t, err)

	assert.Equal(t, 0, store.Sweep(start.Add(time.Minute)))
	assert.Equal(t, 1, store.Sweep(start.Add(time.Minute+time.Millisecond)))
	assert.Equal(t, 1, store.Len())

	_, ok := store.Get("old")
	assert.False(t, ok)
}

func TestMemoryStore_RunSweeperStopsWithContext(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	_, err := store.Hit(context.Background(), "k", 1, time.Nanosecond, time.Now().Add(-time.Second))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.RunSweeper(ctx, 5*time.Millisecond, nil)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
