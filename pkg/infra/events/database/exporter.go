package database

import (
	"context"
	"errors"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/decision"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/repository"
)

const ExporterName = "database"

// Exporter writes decision events to the security_decisions table.
type Exporter struct {
	repo repository.DecisionRepository
}

func NewExporter(repo repository.DecisionRepository) *Exporter {
	return &Exporter{repo: repo}
}

func (e *Exporter) Name() string {
	return ExporterName
}

func (e *Exporter) ValidateConfig(_ map[string]interface{}) error {
	if e.repo == nil {
		return errors.New("database exporter requires a configured database")
	}
	return nil
}

func (e *Exporter) WithSettings(_ map[string]interface{}) (decision.Exporter, error) {
	return e, nil
}

func (e *Exporter) Handle(ctx context.Context, evt *decision.Event) error {
	return e.repo.Save(ctx, evt)
}

func (e *Exporter) Close() {}
