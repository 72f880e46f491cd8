package database

import (
	"context"
	"testing"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/decision"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRepo struct {
	saved []*decision.Event
}

func (r *recordingRepo) Save(_ context.Context, evt *decision.Event) error {
	r.saved = append(r.saved, evt)
	return nil
}

func (r *recordingRepo) ListByIdentity(context.Context, string, int) ([]*decision.Event, error) {
	return r.saved, nil
}

func TestExporter_SavesEvent(t *testing.T) {
	repo := &recordingRepo{}
	exp := NewExporter(repo)
	require.NoError(t, exp.ValidateConfig(nil))

	built, err := exp.WithSettings(nil)
	require.NoError(t, err)

	evt := &decision.Event{ID: uuid.New(), Outcome: decision.OutcomeRateLimited}
	require.NoError(t, built.Handle(context.Background(), evt))
	require.Len(t, repo.saved, 1)
	assert.Equal(t, evt.ID, repo.saved[0].ID)
}

func TestExporter_RequiresRepository(t *testing.T) {
	err := NewExporter(nil).ValidateConfig(nil)
	assert.Error(t, err)
}
