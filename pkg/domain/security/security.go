package security

// RiskLevel classifies the total risk score of a scanned snippet.
type RiskLevel string

const (
	RiskSafe   RiskLevel = "safe"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Score thresholds. Medium is the pass/fail boundary.
const (
	LowThreshold    = 3
	MediumThreshold = 6
	HighThreshold   = 8
)

// ClassifyScore maps a total risk score to its level.
func ClassifyScore(score int) RiskLevel {
	switch {
	case score >= HighThreshold:
		return RiskHigh
	case score >= MediumThreshold:
		return RiskMedium
	case score >= LowThreshold:
		return RiskLow
	default:
		return RiskSafe
	}
}

type ScanRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Language    string `json:"language"`
}

// Risk is the contribution of a single triggered rule.
type Risk struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

type ScanResult struct {
	IsSafe    bool      `json:"isSafe"`
	RiskScore int       `json:"riskScore"`
	RiskLevel RiskLevel `json:"riskLevel"`
	Matches   []string  `json:"matches"`
	Risks     []Risk    `json:"risks"`
}

// SafeResult is the zero-risk result returned for empty code.
func SafeResult() ScanResult {
	return ScanResult{
		IsSafe:    true,
		RiskScore: 0,
		RiskLevel: RiskSafe,
		Matches:   []string{},
		Risks:     []Risk{},
	}
}

type ProfanityDetails struct {
	TitleHasProfanity       bool `json:"titleHasProfanity"`
	DescriptionHasProfanity bool `json:"descriptionHasProfanity"`
}

type CheckResult struct {
	IsSecure         bool             `json:"isSecure"`
	HasProfanity     bool             `json:"hasProfanity"`
	ProfanityDetails ProfanityDetails `json:"profanityDetails"`
	MalwareDetails   ScanResult       `json:"malwareDetails"`
	AllowOverride    bool             `json:"allowOverride"`
}

// NewCheckResult derives the composite flags from the two partial checks.
func NewCheckResult(profanity ProfanityDetails, malware ScanResult) CheckResult {
	hasProfanity := profanity.TitleHasProfanity || profanity.DescriptionHasProfanity
	return CheckResult{
		IsSecure:         !hasProfanity && malware.IsSafe,
		HasProfanity:     hasProfanity,
		ProfanityDetails: profanity,
		MalwareDetails:   malware,
		AllowOverride:    malware.RiskLevel != RiskHigh,
	}
}

// Categories returns the distinct rule categories that contributed to the result.
func (r ScanResult) Categories() []string {
	seen := make(map[string]struct{}, len(r.Risks))
	var out []string
	for _, risk := range r.Risks {
		if _, ok := seen[risk.Category]; ok {
			continue
		}
		seen[risk.Category] = struct{}{}
		out = append(out, risk.Category)
	}
	return out
}
