package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/domain"
	"github.com/NeuralTrust/SnippetGate/pkg/domain/snippet"
	"github.com/google/uuid"
)

// MemorySnippetRepository keeps snippets in process. It backs the service
// when no database is configured.
type MemorySnippetRepository struct {
	mu       sync.RWMutex
	snippets map[uuid.UUID]snippet.Snippet
}

func NewMemorySnippetRepository() *MemorySnippetRepository {
	return &MemorySnippetRepository{snippets: make(map[uuid.UUID]snippet.Snippet)}
}

func (r *MemorySnippetRepository) Save(_ context.Context, s *snippet.Snippet) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snippets[s.ID] = *s
	return nil
}

func (r *MemorySnippetRepository) GetByID(_ context.Context, id uuid.UUID) (*snippet.Snippet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.snippets[id]
	if !ok {
		return nil, domain.NewNotFoundError("snippet", id)
	}
	return &s, nil
}

func (r *MemorySnippetRepository) ListByAuthor(_ context.Context, authorKey string, limit int) ([]*snippet.Snippet, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	r.mu.RLock()
	var out []*snippet.Snippet
	for _, s := range r.snippets {
		if s.AuthorKey == authorKey {
			cp := s
			out = append(out, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
