package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/domain"
	"github.com/NeuralTrust/SnippetGate/pkg/domain/decision"
	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
	"github.com/NeuralTrust/SnippetGate/pkg/domain/snippet"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/events"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/prometheus"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit"
	"github.com/NeuralTrust/SnippetGate/pkg/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RateLimiter is the part of the limiter the gate depends on.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, authenticated bool) (ratelimit.Decision, error)
}

type SubmitInput struct {
	Request   security.ScanRequest
	Identity  utils.Identity
	Override  bool
	UserAgent *utils.UserAgentInfo
}

type SubmitOutput struct {
	Snippet   *snippet.Snippet
	Check     security.CheckResult
	RateLimit ratelimit.Decision
}

//go:generate mockery --name=Gate --dir=. --output=./mocks --filename=gate_mock.go --case=underscore --with-expecter
type Gate interface {
	// Submit runs the full pipeline: security check, override policy, rate
	// limit, persistence. Rejections are returned as *security.ProfanityError,
	// *security.MaliciousContentError or *security.RateLimitedError; the
	// output still carries the check and the limiter decision when known.
	Submit(ctx context.Context, in SubmitInput) (SubmitOutput, error)
}

type GateOpts struct {
	TimeProvider    func() time.Time
	DefaultLanguage string
}

type gate struct {
	logger          *logrus.Logger
	checker         Checker
	limiter         RateLimiter
	repo            snippet.Repository
	dispatcher      events.Dispatcher
	now             func() time.Time
	defaultLanguage string
}

func NewGate(
	logger *logrus.Logger,
	checker Checker,
	limiter RateLimiter,
	repo snippet.Repository,
	dispatcher events.Dispatcher,
	opts *GateOpts,
) Gate {
	g := &gate{
		logger:          logger,
		checker:         checker,
		limiter:         limiter,
		repo:            repo,
		dispatcher:      dispatcher,
		now:             time.Now,
		defaultLanguage: "plaintext",
	}
	if opts != nil {
		if opts.TimeProvider != nil {
			g.now = opts.TimeProvider
		}
		if opts.DefaultLanguage != "" {
			g.defaultLanguage = opts.DefaultLanguage
		}
	}
	return g
}

func (g *gate) Submit(ctx context.Context, in SubmitInput) (SubmitOutput, error) {
	var out SubmitOutput
	if in.Request.Language == "" {
		in.Request.Language = g.defaultLanguage
	}

	check := g.checker.Check(in.Request)
	out.Check = check
	malware := check.MalwareDetails
	fields := logrus.Fields{
		"identity":   in.Identity.Key,
		"risk_score": malware.RiskScore,
		"risk_level": malware.RiskLevel,
	}

	if check.HasProfanity {
		g.logger.WithFields(fields).Info("submission rejected: profanity")
		g.emit(in, check, decision.OutcomeProfanity, nil)
		prometheus.SubmissionsTotal.WithLabelValues(string(decision.OutcomeProfanity)).Inc()
		return out, &security.ProfanityError{Details: check.ProfanityDetails}
	}

	overridden := false
	if !malware.IsSafe {
		if !in.Override || !check.AllowOverride {
			g.logger.WithFields(fields).Info("submission rejected: malicious pattern")
			g.emit(in, check, decision.OutcomeMalicious, nil)
			prometheus.SubmissionsTotal.WithLabelValues(string(decision.OutcomeMalicious)).Inc()
			return out, &security.MaliciousContentError{Result: malware, AllowOverride: check.AllowOverride}
		}
		overridden = true
		g.logger.WithFields(fields).Warn("security override accepted")
	}

	rl, err := g.limiter.CheckRateLimit(ctx, in.Identity.Key, in.Identity.Authenticated)
	if err != nil {
		return out, err
	}
	out.RateLimit = rl
	if !rl.Allowed {
		g.logger.WithFields(fields).Info("submission rejected: rate limited")
		g.emit(in, check, decision.OutcomeRateLimited, nil)
		prometheus.SubmissionsTotal.WithLabelValues(string(decision.OutcomeRateLimited)).Inc()
		return out, &security.RateLimitedError{Key: in.Identity.Key, Limit: rl.Limit, RetryAfter: rl.RetryAfter}
	}

	s := &snippet.Snippet{
		ID:            uuid.New(),
		Title:         in.Request.Title,
		Description:   in.Request.Description,
		Code:          in.Request.Code,
		Language:      in.Request.Language,
		AuthorKey:     in.Identity.Key,
		Authenticated: in.Identity.Authenticated,
		RiskScore:     malware.RiskScore,
		RiskLevel:     string(malware.RiskLevel),
		Risks:         domain.RisksJSON(malware.Risks),
		Overridden:    overridden,
		CreatedAt:     g.now(),
	}
	if err := g.repo.Save(ctx, s); err != nil {
		return out, fmt.Errorf("failed to save snippet: %w", err)
	}
	out.Snippet = s

	outcome := decision.OutcomeAccepted
	if overridden {
		outcome = decision.OutcomeOverridden
		g.emit(in, check, outcome, &s.ID)
	}
	prometheus.SubmissionsTotal.WithLabelValues(string(outcome)).Inc()
	return out, nil
}

func (g *gate) emit(in SubmitInput, check security.CheckResult, outcome decision.Outcome, snippetID *uuid.UUID) {
	if g.dispatcher == nil {
		return
	}
	malware := check.MalwareDetails
	evt := &decision.Event{
		ID:            uuid.New(),
		Outcome:       outcome,
		IdentityKey:   in.Identity.Key,
		Authenticated: in.Identity.Authenticated,
		SnippetID:     snippetID,
		Language:      in.Request.Language,
		RiskScore:     malware.RiskScore,
		RiskLevel:     string(malware.RiskLevel),
		Matches:       malware.Matches,
		Categories:    malware.Categories(),
		Risks:         domain.RisksJSON(malware.Risks),
		Overridden:    outcome == decision.OutcomeOverridden,
		CreatedAt:     g.now(),
	}
	if in.UserAgent != nil {
		evt.Browser = in.UserAgent.Browser
		evt.Device = in.UserAgent.Device
		evt.OS = in.UserAgent.OS
	}
	g.dispatcher.Dispatch(evt)
}
