package mocks

import (
	"github.com/stretchr/testify/mock"
)

type MockCircuitBreaker struct {
	mock.Mock
}

// Execute runs fn unless the expectation returns an error, which simulates an
// open breaker.
func (m *MockCircuitBreaker) Execute(fn func() error) error {
	args := m.Called()
	if err := args.Error(0); err != nil {
		return err
	}
	return fn()
}

func (m *MockCircuitBreaker) State() string {
	args := m.Called()
	return args.String(0)
}
