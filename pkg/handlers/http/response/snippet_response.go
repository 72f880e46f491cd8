package response

import (
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/snippet"
	"github.com/google/uuid"
)

type SnippetOutput struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Code          string       `json:"code"`
	Language      string       `json:"language"`
	Authenticated bool         `json:"authenticated"`
	RiskScore     int          `json:"risk_score"`
	RiskLevel     string       `json:"risk_level"`
	Risks         []RiskOutput `json:"risks"`
	Overridden    bool         `json:"overridden"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Snippet renders a stored snippet. The author key is an IP or user id and
// is never returned.
func Snippet(s *snippet.Snippet, expose bool) SnippetOutput {
	return SnippetOutput{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		Code:          s.Code,
		Language:      s.Language,
		Authenticated: s.Authenticated,
		RiskScore:     s.RiskScore,
		RiskLevel:     s.RiskLevel,
		Risks:         Risks(s.Risks, expose),
		Overridden:    s.Overridden,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
