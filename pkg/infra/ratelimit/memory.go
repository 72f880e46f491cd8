package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type memoryEntry struct {
	window   Window
	duration time.Duration
}

// MemoryStore keeps windows in process. Limits are per process, not global.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*memoryEntry)}
}

func (m *MemoryStore) Hit(_ context.Context, key string, limit int, window time.Duration, now time.Time) (HitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current *Window
	if entry, ok := m.data[key]; ok {
		current = &entry.window
	}
	next, allowed := step(current, limit, window, now)
	if allowed {
		m.data[key] = &memoryEntry{window: next, duration: window}
	}
	return HitResult{Allowed: allowed, Window: next}, nil
}

func (m *MemoryStore) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Get returns a copy of key's window.
func (m *MemoryStore) Get(key string) (Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.data[key]
	if !ok {
		return Window{}, false
	}
	return entry.window, true
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// Sweep drops windows that have fully elapsed at now. A dropped key behaves
// exactly like an elapsed one on its next hit.
func (m *MemoryStore) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, entry := range m.data {
		if now.Sub(entry.window.Start) > entry.duration {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration, logger *logrus.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := m.Sweep(now); removed > 0 && logger != nil {
				logger.WithField("removed", removed).Debug("swept elapsed rate limit windows")
			}
		}
	}
}
