package scanner

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RulesFile is the YAML document accepted by LoadRulesFile.
type RulesFile struct {
	Rules     []RuleSpec              `yaml:"rules"`
	Languages map[string]LanguageSpec `yaml:"languages"`
	Whitelist []WhitelistSpec         `yaml:"whitelist"`
}

type RuleSpec struct {
	ID       string `yaml:"id"`
	Pattern  string `yaml:"pattern"`
	Score    int    `yaml:"score"`
	Category string `yaml:"category"`
	Context  string `yaml:"context"`
}

type LanguageSpec struct {
	SafeContexts []string `yaml:"safe_contexts"`
	RiskPatterns []string `yaml:"risk_patterns"`
}

type WhitelistSpec struct {
	RuleID  string `yaml:"rule_id"`
	Pattern string `yaml:"pattern"`
}

// LoadRulesFile reads and compiles an extra rules file into scanner options.
// Every pattern is compiled up front; one bad entry fails the whole file.
func LoadRulesFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}

func ParseRules(data []byte) ([]Option, error) {
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	var opts []Option

	rules := make([]PatternRule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		rule, err := spec.compile()
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		rules = append(rules, rule)
	}
	if len(rules) > 0 {
		opts = append(opts, WithRules(rules...))
	}

	for name, spec := range file.Languages {
		profile, err := spec.compile()
		if err != nil {
			return nil, fmt.Errorf("languages[%s]: %w", name, err)
		}
		opts = append(opts, WithLanguageProfile(name, profile))
	}

	entries := make([]WhitelistRule, 0, len(file.Whitelist))
	for i, spec := range file.Whitelist {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("whitelist[%d]: invalid pattern: %w", i, err)
		}
		entries = append(entries, WhitelistRule{RuleID: spec.RuleID, Pattern: re})
	}
	if len(entries) > 0 {
		opts = append(opts, WithWhitelistRules(entries...))
	}

	return opts, nil
}

func (s RuleSpec) compile() (PatternRule, error) {
	if s.ID == "" {
		return PatternRule{}, fmt.Errorf("id is required")
	}
	if s.Score <= 0 {
		return PatternRule{}, fmt.Errorf("rule %s: score must be positive", s.ID)
	}
	ctx := Context(s.Context)
	switch ctx {
	case AnyContext, HTMLContext, NonCommentContext:
	default:
		return PatternRule{}, fmt.Errorf("rule %s: unknown context %q", s.ID, s.Context)
	}
	re, err := regexp.Compile(s.Pattern)
	if err != nil {
		return PatternRule{}, fmt.Errorf("rule %s: invalid pattern: %w", s.ID, err)
	}
	category := Category(s.Category)
	if category == "" {
		category = "custom"
	}
	return PatternRule{ID: s.ID, Pattern: re, Score: s.Score, Category: category, Context: ctx}, nil
}

func (s LanguageSpec) compile() (LanguageProfile, error) {
	var profile LanguageProfile
	for _, p := range s.SafeContexts {
		re, err := regexp.Compile(p)
		if err != nil {
			return LanguageProfile{}, fmt.Errorf("invalid safe context: %w", err)
		}
		profile.SafeContexts = append(profile.SafeContexts, re)
	}
	for _, p := range s.RiskPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return LanguageProfile{}, fmt.Errorf("invalid risk pattern: %w", err)
		}
		profile.RiskPatterns = append(profile.RiskPatterns, re)
	}
	return profile, nil
}
