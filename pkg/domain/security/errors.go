package security

import (
	"fmt"
	"time"
)

// ProfanityError rejects a submission whose title or description is offensive.
type ProfanityError struct {
	Details ProfanityDetails
}

func (e *ProfanityError) Error() string {
	return fmt.Sprintf(
		"content inappropriate (title: %t, description: %t)",
		e.Details.TitleHasProfanity,
		e.Details.DescriptionHasProfanity,
	)
}

// MaliciousContentError rejects code scoring at or above the medium threshold
// that was not (or could not be) overridden.
type MaliciousContentError struct {
	Result        ScanResult
	AllowOverride bool
}

func (e *MaliciousContentError) Error() string {
	return fmt.Sprintf(
		"malicious pattern detected (score %d, level %s, override allowed: %t)",
		e.Result.RiskScore,
		e.Result.RiskLevel,
		e.AllowOverride,
	)
}

// RateLimitedError rejects a caller that exhausted its window.
type RateLimitedError struct {
	Key        string
	Limit      int
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many requests for %s (limit %d, retry after %s)", e.Key, e.Limit, e.RetryAfter)
}
