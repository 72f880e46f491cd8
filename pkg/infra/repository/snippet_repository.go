package repository

import (
	"context"
	"errors"

	"github.com/NeuralTrust/SnippetGate/pkg/domain"
	"github.com/NeuralTrust/SnippetGate/pkg/domain/snippet"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxListLimit = 100

type snippetRepository struct {
	db *gorm.DB
}

func NewSnippetRepository(db *gorm.DB) snippet.Repository {
	return &snippetRepository{
		db: db,
	}
}

func (r *snippetRepository) Save(ctx context.Context, s *snippet.Snippet) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *snippetRepository) GetByID(ctx context.Context, id uuid.UUID) (*snippet.Snippet, error) {
	var s snippet.Snippet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("snippet", id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *snippetRepository) ListByAuthor(ctx context.Context, authorKey string, limit int) ([]*snippet.Snippet, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	var out []*snippet.Snippet
	if err := r.db.WithContext(ctx).
		Where("author_key = ?", authorKey).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
