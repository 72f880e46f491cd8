package scanner

import (
	"sort"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
)

// DefaultLanguage is used when a scan declares no language.
const DefaultLanguage = "plaintext"

// Scanner scores submissions for profanity and malicious code. It is built
// once and is safe for concurrent use: nothing is mutated after New.
type Scanner struct {
	rules           []PatternRule
	profiles        map[string]LanguageProfile
	profileRules    map[string][]PatternRule
	whitelist       WhitelistPolicy
	profanity       *profanityFilter
	defaultLanguage string
}

type Option func(*options)

type options struct {
	rules           []PatternRule
	profiles        map[string]LanguageProfile
	whitelistRules  []WhitelistRule
	whitelistPolicy WhitelistPolicy
	whitelistMode   string
	denylist        []string
	defaultLanguage string
}

// WithRules appends generic rules to the built-in catalogue.
func WithRules(rules ...PatternRule) Option {
	return func(o *options) {
		o.rules = append(o.rules, rules...)
	}
}

// WithLanguageProfile registers or replaces the profile for a language name.
func WithLanguageProfile(language string, profile LanguageProfile) Option {
	return func(o *options) {
		o.profiles[normalizeLanguage(language)] = profile
	}
}

// WithWhitelistRules appends entries to the built-in whitelist.
func WithWhitelistRules(entries ...WhitelistRule) Option {
	return func(o *options) {
		o.whitelistRules = append(o.whitelistRules, entries...)
	}
}

// WithWhitelistPolicy replaces the whitelist policy. Entries passed with
// WithWhitelistRules are ignored when a policy is set explicitly.
func WithWhitelistPolicy(policy WhitelistPolicy) Option {
	return func(o *options) {
		o.whitelistPolicy = policy
	}
}

// WithWhitelistMode selects the built-in policy by name. Unknown modes fall
// back to textual; use ValidWhitelistMode to reject them earlier.
func WithWhitelistMode(mode string) Option {
	return func(o *options) {
		o.whitelistMode = mode
	}
}

// WithDenylist replaces the profanity terms.
func WithDenylist(terms ...string) Option {
	return func(o *options) {
		o.denylist = terms
	}
}

func WithDefaultLanguage(language string) Option {
	return func(o *options) {
		if language != "" {
			o.defaultLanguage = language
		}
	}
}

func New(opts ...Option) *Scanner {
	o := &options{
		rules:           DefaultRules(),
		profiles:        DefaultProfiles(),
		whitelistRules:  DefaultWhitelist(),
		denylist:        DefaultDenylist(),
		defaultLanguage: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(o)
	}

	policy := o.whitelistPolicy
	if policy == nil {
		var err error
		if policy, err = NewWhitelistPolicy(o.whitelistMode, o.whitelistRules); err != nil {
			policy = NewTextualPolicy(o.whitelistRules)
		}
	}

	profileRules := make(map[string][]PatternRule, len(o.profiles))
	for name, profile := range o.profiles {
		profileRules[name] = profile.rules(name)
	}

	return &Scanner{
		rules:           o.rules,
		profiles:        o.profiles,
		profileRules:    profileRules,
		whitelist:       policy,
		profanity:       newProfanityFilter(o.denylist),
		defaultLanguage: o.defaultLanguage,
	}
}

// Rules returns the generic catalogue followed by every language rule.
func (s *Scanner) Rules() []PatternRule {
	out := make([]PatternRule, 0, len(s.rules))
	out = append(out, s.rules...)
	for _, name := range s.Languages() {
		out = append(out, s.profileRules[name]...)
	}
	return out
}

// Languages lists the registered language names in sorted order.
func (s *Scanner) Languages() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scanner) WhitelistMode() string {
	return s.whitelist.Name()
}

func (s *Scanner) ContainsProfanity(text string) bool {
	return s.profanity.contains(text)
}

func (s *Scanner) IsEducationalContext(code, language string) bool {
	if hasEducationalComment(code) {
		return true
	}
	profile, ok := s.profiles[normalizeLanguage(language)]
	if !ok {
		return false
	}
	for _, re := range profile.SafeContexts {
		if re.MatchString(code) {
			return true
		}
	}
	return false
}

func (s *Scanner) ScanForMaliciousCode(code, language string) security.ScanResult {
	if code == "" {
		return security.SafeResult()
	}
	if language == "" {
		language = s.defaultLanguage
	}
	lang := normalizeLanguage(language)
	educational := s.IsEducationalContext(code, lang)

	result := security.SafeResult()
	body := &scanBody{code: code, language: lang}
	for _, rule := range s.effectiveRules(lang) {
		if !triggers(rule, body, lang) {
			continue
		}
		if s.whitelist.Suppresses(rule, code) {
			continue
		}
		score := rule.Score
		if educational {
			score = max(1, score-3)
		}
		source := rule.Source()
		result.Matches = append(result.Matches, source)
		result.Risks = append(result.Risks, security.Risk{
			Pattern:  source,
			Category: string(rule.Category),
			Score:    score,
		})
		result.RiskScore += score
	}

	result.RiskLevel = security.ClassifyScore(result.RiskScore)
	result.IsSafe = result.RiskScore < security.MediumThreshold
	return result
}

func (s *Scanner) PerformSecurityCheck(req security.ScanRequest) security.CheckResult {
	profanity := security.ProfanityDetails{
		TitleHasProfanity:       s.ContainsProfanity(req.Title),
		DescriptionHasProfanity: s.ContainsProfanity(req.Description),
	}
	return security.NewCheckResult(profanity, s.ScanForMaliciousCode(req.Code, req.Language))
}

func (s *Scanner) effectiveRules(language string) []PatternRule {
	extra := s.profileRules[language]
	if len(extra) == 0 {
		return s.rules
	}
	out := make([]PatternRule, 0, len(s.rules)+len(extra))
	out = append(out, s.rules...)
	return append(out, extra...)
}

type scanBody struct {
	code       string
	language   string
	noComments *string
}

// withoutComments strips comments at most once per scan.
func (b *scanBody) withoutComments() string {
	if b.noComments == nil {
		stripped := stripComments(b.code, b.language)
		b.noComments = &stripped
	}
	return *b.noComments
}

func triggers(rule PatternRule, body *scanBody, language string) bool {
	if rule.Pattern == nil {
		return false
	}
	switch rule.Context {
	case HTMLContext:
		return isMarkupLanguage(language) && rule.Pattern.MatchString(body.code)
	case NonCommentContext:
		return rule.Pattern.MatchString(body.withoutComments())
	default:
		return rule.Pattern.MatchString(body.code)
	}
}
