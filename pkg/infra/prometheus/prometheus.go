package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		1, 5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
	}

	// Risk scores are unbounded sums; the buckets straddle the 3/6/8 thresholds.
	riskScoreBuckets = []float64{0, 1, 3, 6, 8, 12, 20, 40}

	ScansTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "snippetgate_scans_total",
			Help: "Total number of security checks by resulting risk level",
		},
		[]string{"risk_level"},
	)

	ScanRiskScore = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snippetgate_scan_risk_score",
			Help:    "Distribution of malicious-code risk scores",
			Buckets: riskScoreBuckets,
		},
	)

	RuleMatchesTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "snippetgate_rule_matches_total",
			Help: "Triggered scanner rules by category",
		},
		[]string{"category"},
	)

	RateLimitDecisionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "snippetgate_rate_limit_decisions_total",
			Help: "Rate limiter decisions by caller tier and result",
		},
		[]string{"tier", "result"},
	)

	SubmissionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "snippetgate_submissions_total",
			Help: "Snippet submissions by gate outcome",
		},
		[]string{"outcome"},
	)

	RequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "snippetgate_requests_total",
			Help: "HTTP requests by route and status class",
		},
		[]string{"route", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "snippetgate_request_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)
)

type MetricsConfig struct {
	EnableLatency   bool // Per-route latency histogram
	EnableRuleHits  bool // Per-category rule counters
	EnableProcesses bool // Go process collector
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:   true,
		EnableRuleHits:  true,
		EnableProcesses: true,
	}
}

var Config = DefaultMetricsConfig()

func Initialize(cfg MetricsConfig) {
	Config = cfg
	if cfg.EnableProcesses {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

// Gatherer exposes the private registry for the scrape handler.
func Gatherer() prometheus.Gatherer {
	return registry
}
