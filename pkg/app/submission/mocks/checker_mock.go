package mocks

import (
	"context"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
	"github.com/stretchr/testify/mock"
)

type Checker struct {
	mock.Mock
}

func (m *Checker) Check(req security.ScanRequest) security.CheckResult {
	args := m.Called(req)
	return args.Get(0).(security.CheckResult)
}

func (m *Checker) CheckBatch(ctx context.Context, reqs []security.ScanRequest) ([]security.CheckResult, error) {
	args := m.Called(ctx, reqs)
	out, _ := args.Get(0).([]security.CheckResult)
	return out, args.Error(1)
}
