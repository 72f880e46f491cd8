package response

import "github.com/NeuralTrust/SnippetGate/pkg/infra/scanner"

type RuleOutput struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Score    int    `json:"score"`
	Context  string `json:"context,omitempty"`
}

type ListRulesOutput struct {
	WhitelistMode string       `json:"whitelist_mode"`
	Languages     []string     `json:"languages"`
	Rules         []RuleOutput `json:"rules"`
}

func Rules(rules []scanner.PatternRule) []RuleOutput {
	out := make([]RuleOutput, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleOutput{
			ID:       r.ID,
			Category: string(r.Category),
			Score:    r.Score,
			Context:  string(r.Context),
		})
	}
	return out
}
