package mocks

import (
	"sync"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/decision"
	"github.com/stretchr/testify/mock"
)

type MockDispatcher struct {
	mock.Mock
	mu     sync.Mutex
	events []*decision.Event
}

func (m *MockDispatcher) StartWorkers(n int) {
	m.Called(n)
}

func (m *MockDispatcher) Dispatch(evt *decision.Event) {
	m.mu.Lock()
	m.events = append(m.events, evt)
	m.mu.Unlock()
	m.Called(evt)
}

func (m *MockDispatcher) Shutdown() {
	m.Called()
}

// Events returns the events dispatched so far.
func (m *MockDispatcher) Events() []*decision.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*decision.Event, len(m.events))
	copy(out, m.events)
	return out
}
