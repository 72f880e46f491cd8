package submission

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/prometheus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyBatch    = errors.New("batch must contain at least one request")
	ErrBatchTooLarge = errors.New("batch exceeds the maximum size")
)

// SecurityScanner is the part of the scanner the gate depends on.
type SecurityScanner interface {
	PerformSecurityCheck(req security.ScanRequest) security.CheckResult
}

//go:generate mockery --name=Checker --dir=. --output=./mocks --filename=checker_mock.go --case=underscore --with-expecter
type Checker interface {
	Check(req security.ScanRequest) security.CheckResult
	CheckBatch(ctx context.Context, reqs []security.ScanRequest) ([]security.CheckResult, error)
}

type checker struct {
	scanner      SecurityScanner
	maxBatchSize int
	concurrency  int
}

func NewChecker(scanner SecurityScanner, maxBatchSize int) Checker {
	return &checker{
		scanner:      scanner,
		maxBatchSize: maxBatchSize,
		concurrency:  runtime.GOMAXPROCS(0),
	}
}

func (c *checker) Check(req security.ScanRequest) security.CheckResult {
	result := c.scanner.PerformSecurityCheck(req)
	recordScan(result.MalwareDetails)
	return result
}

// CheckBatch runs the checks concurrently; results keep the request order.
func (c *checker) CheckBatch(ctx context.Context, reqs []security.ScanRequest) ([]security.CheckResult, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}
	if c.maxBatchSize > 0 && len(reqs) > c.maxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(reqs), c.maxBatchSize)
	}

	results := make([]security.CheckResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.Check(req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func recordScan(result security.ScanResult) {
	prometheus.ScansTotal.WithLabelValues(string(result.RiskLevel)).Inc()
	prometheus.ScanRiskScore.Observe(float64(result.RiskScore))
	if !prometheus.Config.EnableRuleHits {
		return
	}
	for _, risk := range result.Risks {
		prometheus.RuleMatchesTotal.WithLabelValues(risk.Category).Inc()
	}
}
