package clues

import (
	"database/sql"
	"fmt"
)

// Schema defines the SQL schema for the clue cache database.
const Schema = `
-- clue_cache stores generated clue variants keyed by answer, target
-- difficulty, and locale so repeated generations for the same word can
-- skip the LLM entirely.
CREATE TABLE IF NOT EXISTS clue_cache (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	answer TEXT NOT NULL,
	clue TEXT NOT NULL,
	difficulty INTEGER NOT NULL,
	locale TEXT NOT NULL DEFAULT 'fr',
	ambiguity_notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	CONSTRAINT valid_difficulty CHECK (difficulty BETWEEN 1 AND 5)
);

-- Index for fast lookups by answer, difficulty, and locale
CREATE INDEX IF NOT EXISTS idx_clue_cache_answer_difficulty_locale
ON clue_cache(answer, difficulty, locale);
`

// InitDB initializes the database schema. Call this once when setting
// up the clue cache database.
func InitDB(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return nil
}
