package scanner

import (
	"fmt"
	"regexp"
	"strings"
)

// WhitelistRule is a known-benign call shape. RuleID binds the entry to one
// catalogue rule; only the structural policy reads it.
type WhitelistRule struct {
	RuleID  string
	Pattern *regexp.Regexp
}

// WhitelistPolicy decides whether a triggered rule is suppressed.
type WhitelistPolicy interface {
	Name() string
	Suppresses(rule PatternRule, code string) bool
}

const (
	TextualWhitelist    = "textual"
	StructuralWhitelist = "structural"
)

var defaultWhitelist = []WhitelistRule{
	{RuleID: "network-request", Pattern: regexp.MustCompile(`fetch\s*\(\s*["']https://api\.example\.com/`)},
	{RuleID: "network-request", Pattern: regexp.MustCompile(`fetch\s*\(\s*["']/api/`)},
	{RuleID: "char-code", Pattern: regexp.MustCompile(`String\.fromCharCode\s*\(\s*\d+\s*\)`)},
}

// DefaultWhitelist returns a copy of the built-in whitelist entries.
func DefaultWhitelist() []WhitelistRule {
	out := make([]WhitelistRule, len(defaultWhitelist))
	copy(out, defaultWhitelist)
	return out
}

func ValidWhitelistMode(mode string) bool {
	switch strings.ToLower(mode) {
	case "", TextualWhitelist, StructuralWhitelist:
		return true
	}
	return false
}

// NewWhitelistPolicy builds the policy registered under mode.
func NewWhitelistPolicy(mode string, entries []WhitelistRule) (WhitelistPolicy, error) {
	switch strings.ToLower(mode) {
	case "", TextualWhitelist:
		return NewTextualPolicy(entries), nil
	case StructuralWhitelist:
		return NewStructuralPolicy(entries), nil
	default:
		return nil, fmt.Errorf("unknown whitelist mode %q", mode)
	}
}

type textualPolicy struct {
	sources []string
}

// NewTextualPolicy compares pattern source text. A rule is suppressed when a
// whitelist source and the rule source contain one another, regardless of the
// code being scanned. This can over- and under-suppress.
func NewTextualPolicy(entries []WhitelistRule) WhitelistPolicy {
	p := &textualPolicy{sources: make([]string, 0, len(entries))}
	for _, e := range entries {
		if src := patternSource(e.Pattern); src != "" {
			p.sources = append(p.sources, src)
		}
	}
	return p
}

func (p *textualPolicy) Name() string { return TextualWhitelist }

func (p *textualPolicy) Suppresses(rule PatternRule, _ string) bool {
	ruleSource := rule.Source()
	if ruleSource == "" {
		return false
	}
	for _, src := range p.sources {
		if sourcesOverlap(src, ruleSource) {
			return true
		}
	}
	return false
}

func sourcesOverlap(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

type structuralPolicy struct {
	byRule map[string][]*regexp.Regexp
}

// NewStructuralPolicy suppresses a rule only when every match of the rule in
// the code lies inside a match of a whitelist entry bound to that rule's ID.
func NewStructuralPolicy(entries []WhitelistRule) WhitelistPolicy {
	p := &structuralPolicy{byRule: make(map[string][]*regexp.Regexp)}
	for _, e := range entries {
		if e.RuleID == "" || e.Pattern == nil {
			continue
		}
		p.byRule[e.RuleID] = append(p.byRule[e.RuleID], e.Pattern)
	}
	return p
}

func (p *structuralPolicy) Name() string { return StructuralWhitelist }

func (p *structuralPolicy) Suppresses(rule PatternRule, code string) bool {
	allowed, ok := p.byRule[rule.ID]
	if !ok || rule.Pattern == nil {
		return false
	}
	hits := rule.Pattern.FindAllStringIndex(code, -1)
	if len(hits) == 0 {
		return false
	}
	var spans [][]int
	for _, re := range allowed {
		spans = append(spans, re.FindAllStringIndex(code, -1)...)
	}
	for _, hit := range hits {
		if !covered(hit, spans) {
			return false
		}
	}
	return true
}

func covered(hit []int, spans [][]int) bool {
	for _, s := range spans {
		if s[0] <= hit[0] && hit[1] <= s[1] {
			return true
		}
	}
	return false
}
