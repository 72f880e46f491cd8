package snippet

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, s *Snippet) error
	GetByID(ctx context.Context, id uuid.UUID) (*Snippet, error)
	ListByAuthor(ctx context.Context, authorKey string, limit int) ([]*Snippet, error)
}
