package repository

import (
	"context"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/decision"
	"gorm.io/gorm"
)

type DecisionRepository interface {
	Save(ctx context.Context, evt *decision.Event) error
	ListByIdentity(ctx context.Context, identityKey string, limit int) ([]*decision.Event, error)
}

type decisionRepository struct {
	db *gorm.DB
}

func NewDecisionRepository(db *gorm.DB) DecisionRepository {
	return &decisionRepository{db: db}
}

func (r *decisionRepository) Save(ctx context.Context, evt *decision.Event) error {
	return r.db.WithContext(ctx).Create(evt).Error
}

func (r *decisionRepository) ListByIdentity(ctx context.Context, identityKey string, limit int) ([]*decision.Event, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	var out []*decision.Event
	if err := r.db.WithContext(ctx).
		Where("identity_key = ?", identityKey).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
