package migrations

import (
	"github.com/NeuralTrust/SnippetGate/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260101_create_snippets_table",
		Name: "Create snippets table for accepted submissions",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS snippets (
					id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					title         TEXT NOT NULL,
					description   TEXT,
					code          TEXT NOT NULL,
					language      TEXT NOT NULL,
					author_key    TEXT NOT NULL,
					authenticated BOOLEAN NOT NULL DEFAULT FALSE,
					risk_score    INTEGER NOT NULL DEFAULT 0,
					risk_level    TEXT NOT NULL DEFAULT 'safe',
					risks         JSONB,
					overridden    BOOLEAN NOT NULL DEFAULT FALSE,
					created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_snippets_author_created
				ON snippets (author_key, created_at DESC);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS snippets;`).Error
		},
	})
}
