package snippet

import (
	"time"

	"github.com/NeuralTrust/SnippetGate/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Snippet is an accepted submission, stored after it passed the gate.
type Snippet struct {
	ID            uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string           `json:"title" gorm:"type:text;not null"`
	Description   string           `json:"description" gorm:"type:text"`
	Code          string           `json:"code" gorm:"type:text;not null"`
	Language      string           `json:"language" gorm:"type:text;not null"`
	AuthorKey     string           `json:"author_key" gorm:"type:text;not null;index"`
	Authenticated bool             `json:"authenticated" gorm:"not null"`
	RiskScore     int              `json:"risk_score" gorm:"not null"`
	RiskLevel     string           `json:"risk_level" gorm:"type:text;not null"`
	Risks         domain.RisksJSON `json:"risks,omitempty" gorm:"type:jsonb"`
	Overridden    bool             `json:"overridden" gorm:"not null"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (s *Snippet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return nil
}

func (s *Snippet) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Snippet) TableName() string {
	return "snippets"
}
