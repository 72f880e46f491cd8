package events

import (
	"fmt"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/decision"
)

// ExporterFactory validates exporter settings and builds a configured
// exporter from them.
type ExporterFactory interface {
	Name() string
	ValidateConfig(settings map[string]interface{}) error
	WithSettings(settings map[string]interface{}) (decision.Exporter, error)
}

// ExporterSpec names an exporter and carries its raw settings.
type ExporterSpec struct {
	Name     string
	Settings map[string]interface{}
}

type ExporterLocator struct {
	factories map[string]ExporterFactory
}

type ExporterLocatorOption func(*ExporterLocator)

func WithExporter(f ExporterFactory) ExporterLocatorOption {
	return func(l *ExporterLocator) {
		l.factories[f.Name()] = f
	}
}

func NewExporterLocator(opts ...ExporterLocatorOption) *ExporterLocator {
	l := &ExporterLocator{factories: make(map[string]ExporterFactory)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *ExporterLocator) Validate(spec ExporterSpec) error {
	f, ok := l.factories[spec.Name]
	if !ok {
		return fmt.Errorf("unknown exporter: %s", spec.Name)
	}
	return f.ValidateConfig(spec.Settings)
}

func (l *ExporterLocator) Get(spec ExporterSpec) (decision.Exporter, error) {
	if err := l.Validate(spec); err != nil {
		return nil, err
	}
	return l.factories[spec.Name].WithSettings(spec.Settings)
}

// Build resolves every spec, closing what was already built on failure.
func (l *ExporterLocator) Build(specs []ExporterSpec) ([]decision.Exporter, error) {
	out := make([]decision.Exporter, 0, len(specs))
	for _, spec := range specs {
		exp, err := l.Get(spec)
		if err != nil {
			for _, built := range out {
				built.Close()
			}
			return nil, fmt.Errorf("exporter %s: %w", spec.Name, err)
		}
		out = append(out, exp)
	}
	return out, nil
}
