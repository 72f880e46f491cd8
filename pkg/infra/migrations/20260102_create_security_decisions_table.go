package migrations

import (
	"github.com/NeuralTrust/SnippetGate/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260102_create_security_decisions_table",
		Name: "Create security_decisions audit table",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS security_decisions (
					id             UUID PRIMARY KEY,
					outcome        TEXT NOT NULL,
					identity_key   TEXT NOT NULL,
					authenticated  BOOLEAN NOT NULL DEFAULT FALSE,
					snippet_id     UUID REFERENCES snippets(id) ON DELETE SET NULL,
					language       TEXT,
					risk_score     INTEGER NOT NULL DEFAULT 0,
					risk_level     TEXT NOT NULL DEFAULT 'safe',
					matches        TEXT[],
					categories     TEXT[],
					risks          JSONB,
					overridden     BOOLEAN NOT NULL DEFAULT FALSE,
					browser        TEXT,
					device         TEXT,
					os             TEXT,
					created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_security_decisions_identity
				ON security_decisions (identity_key, created_at DESC);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_security_decisions_outcome
				ON security_decisions (outcome);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS security_decisions;`).Error
		},
	})
}
