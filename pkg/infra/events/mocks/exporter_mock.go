package mocks

import (
	"context"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/decision"
	"github.com/stretchr/testify/mock"
)

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockExporter) Handle(ctx context.Context, evt *decision.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockExporter) Close() {
	m.Called()
}
