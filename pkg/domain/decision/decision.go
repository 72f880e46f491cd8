package decision

import (
	"context"
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Outcome of a gate decision worth auditing.
type Outcome string

const (
	OutcomeProfanity   Outcome = "profanity"
	OutcomeMalicious   Outcome = "malicious"
	OutcomeRateLimited Outcome = "rate_limited"
	OutcomeOverridden  Outcome = "overridden"
	OutcomeAccepted    Outcome = "accepted"
)

// Event is the audit record emitted for every rejection and every accepted
// override.
type Event struct {
	ID            uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Outcome       Outcome          `json:"outcome" gorm:"type:text;not null;index"`
	IdentityKey   string           `json:"identity_key" gorm:"type:text;not null;index"`
	Authenticated bool             `json:"authenticated" gorm:"not null"`
	SnippetID     *uuid.UUID       `json:"snippet_id,omitempty" gorm:"type:uuid"`
	Language      string           `json:"language" gorm:"type:text"`
	RiskScore     int              `json:"risk_score" gorm:"not null"`
	RiskLevel     string           `json:"risk_level" gorm:"type:text;not null"`
	Matches       pq.StringArray   `json:"matches" gorm:"type:text[]"`
	Categories    pq.StringArray   `json:"categories" gorm:"type:text[]"`
	Risks         domain.RisksJSON `json:"risks,omitempty" gorm:"type:jsonb"`
	Overridden    bool             `json:"overridden" gorm:"not null"`
	Browser       string           `json:"browser,omitempty" gorm:"type:text"`
	Device        string           `json:"device,omitempty" gorm:"type:text"`
	OS            string           `json:"os,omitempty" gorm:"type:text"`
	CreatedAt     time.Time        `json:"created_at"`
}

func (e *Event) TableName() string {
	return "security_decisions"
}

// Exporter delivers decision events to one sink.
type Exporter interface {
	Name() string
	Handle(ctx context.Context, evt *Event) error
	Close()
}
