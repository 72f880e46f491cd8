package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/snippet"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/cache"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// cachedSnippetRepository reads snippets through the cache. Snippets are
// immutable once stored, so entries are never invalidated, only expired.
type cachedSnippetRepository struct {
	next   snippet.Repository
	cache  cache.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedSnippetRepository(
	next snippet.Repository,
	cacheClient cache.Client,
	ttl time.Duration,
	logger *logrus.Logger,
) snippet.Repository {
	return &cachedSnippetRepository{next: next, cache: cacheClient, ttl: ttl, logger: logger}
}

func (r *cachedSnippetRepository) Save(ctx context.Context, s *snippet.Snippet) error {
	if err := r.next.Save(ctx, s); err != nil {
		return err
	}
	r.store(ctx, s)
	return nil
}

func (r *cachedSnippetRepository) GetByID(ctx context.Context, id uuid.UUID) (*snippet.Snippet, error) {
	key := fmt.Sprintf(cache.SnippetKeyPattern, id.String())
	raw, err := r.cache.Get(ctx, key)
	if err == nil {
		var s snippet.Snippet
		if err := json.Unmarshal([]byte(raw), &s); err == nil {
			return &s, nil
		}
		r.logger.WithField("key", key).Warn("discarding undecodable cached snippet")
	} else if !errors.Is(err, cache.ErrMiss) {
		r.logger.WithError(err).WithField("key", key).Warn("snippet cache read failed")
	}

	s, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, s)
	return s, nil
}

func (r *cachedSnippetRepository) ListByAuthor(ctx context.Context, authorKey string, limit int) ([]*snippet.Snippet, error) {
	return r.next.ListByAuthor(ctx, authorKey, limit)
}

func (r *cachedSnippetRepository) store(ctx context.Context, s *snippet.Snippet) {
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	key := fmt.Sprintf(cache.SnippetKeyPattern, s.ID.String())
	if err := r.cache.Set(ctx, key, string(data), r.ttl); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("snippet cache write failed")
	}
}
