package mocks

import (
	"context"

	"github.com/NeuralTrust/SnippetGate/pkg/app/submission"
	"github.com/stretchr/testify/mock"
)

type Gate struct {
	mock.Mock
}

func (m *Gate) Submit(ctx context.Context, in submission.SubmitInput) (submission.SubmitOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(submission.SubmitOutput)
	return out, args.Error(1)
}
