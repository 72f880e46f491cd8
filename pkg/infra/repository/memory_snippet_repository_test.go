package repository

import (
	"context"
	"testing"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/domain"
	"github.com/NeuralTrust/SnippetGate/pkg/domain/snippet"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySnippetRepository_SaveAndGet(t *testing.T) {
	repo := NewMemorySnippetRepository()
	ctx := context.Background()

	s := &snippet.Snippet{Title: "hello", Code: "console.log('hi')", Language: "javascript", AuthorKey: "user:42"}
	require.NoError(t, repo.Save(ctx, s))
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.False(t, s.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)

	got.Title = "mutated"
	again, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", again.Title)
}

func TestMemorySnippetRepository_NotFound(t *testing.T) {
	repo := NewMemorySnippetRepository()
	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsNotFoundError(err))
}

func TestMemorySnippetRepository_ListByAuthor(t *testing.T) {
	repo := NewMemorySnippetRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &snippet.Snippet{
			Title:     "s",
			AuthorKey: "ip:10.0.0.1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Save(ctx, &snippet.Snippet{Title: "other", AuthorKey: "user:1"}))

	list, err := repo.ListByAuthor(ctx, "ip:10.0.0.1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
}
