package response

import (
	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
)

type RiskOutput struct {
	Pattern  string `json:"pattern,omitempty"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

type MalwareOutput struct {
	IsSafe    bool               `json:"isSafe"`
	RiskScore int                `json:"riskScore"`
	RiskLevel security.RiskLevel `json:"riskLevel"`
	Matches   []string           `json:"matches,omitempty"`
	Risks     []RiskOutput       `json:"risks"`
}

type CheckOutput struct {
	IsSecure         bool                      `json:"isSecure"`
	HasProfanity     bool                      `json:"hasProfanity"`
	ProfanityDetails security.ProfanityDetails `json:"profanityDetails"`
	MalwareDetails   MalwareOutput             `json:"malwareDetails"`
	AllowOverride    bool                      `json:"allowOverride"`
}

type BatchCheckOutput struct {
	Results []CheckOutput `json:"results"`
}

// MaliciousOutput is the 422 body of a submission refused for its code.
type MaliciousOutput struct {
	Error         string       `json:"error"`
	RiskScore     int          `json:"risk_score"`
	RiskLevel     string       `json:"risk_level"`
	AllowOverride bool         `json:"allow_override"`
	Risks         []RiskOutput `json:"risks"`
	Matches       []string     `json:"matches,omitempty"`
}

type ProfanityOutput struct {
	Error            string                    `json:"error"`
	ProfanityDetails security.ProfanityDetails `json:"profanity_details"`
}

type RateLimitOutput struct {
	Allowed           bool   `json:"allowed"`
	Remaining         int    `json:"remaining"`
	Limit             int    `json:"limit"`
	RetryAfterSeconds *int64 `json:"retry_after_seconds,omitempty"`
}

// Risks converts scanner risks, dropping the pattern text unless expose is set.
func Risks(risks []security.Risk, expose bool) []RiskOutput {
	out := make([]RiskOutput, 0, len(risks))
	for _, r := range risks {
		item := RiskOutput{Category: r.Category, Score: r.Score}
		if expose {
			item.Pattern = r.Pattern
		}
		out = append(out, item)
	}
	return out
}

func Malware(result security.ScanResult, expose bool) MalwareOutput {
	out := MalwareOutput{
		IsSafe:    result.IsSafe,
		RiskScore: result.RiskScore,
		RiskLevel: result.RiskLevel,
		Risks:     Risks(result.Risks, expose),
	}
	if expose {
		out.Matches = result.Matches
	}
	return out
}

func Check(result security.CheckResult, expose bool) CheckOutput {
	return CheckOutput{
		IsSecure:         result.IsSecure,
		HasProfanity:     result.HasProfanity,
		ProfanityDetails: result.ProfanityDetails,
		MalwareDetails:   Malware(result.MalwareDetails, expose),
		AllowOverride:    result.AllowOverride,
	}
}

func Malicious(err *security.MaliciousContentError, expose bool) MaliciousOutput {
	out := MaliciousOutput{
		Error:         "malicious pattern detected",
		RiskScore:     err.Result.RiskScore,
		RiskLevel:     string(err.Result.RiskLevel),
		AllowOverride: err.AllowOverride,
		Risks:         Risks(err.Result.Risks, expose),
	}
	if expose {
		out.Matches = err.Result.Matches
	}
	return out
}

func Profanity(err *security.ProfanityError) ProfanityOutput {
	return ProfanityOutput{
		Error:            "content inappropriate",
		ProfanityDetails: err.Details,
	}
}
