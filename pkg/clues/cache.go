package clues

import (
	"database/sql"
	"fmt"
)

// CachedVariant is one previously generated clue row.
type CachedVariant struct {
	Prompt         string
	Difficulty     int
	AmbiguityNotes string
}

// ClueCache provides methods for saving and retrieving cached clue
// variants, keyed by answer, difficulty, and locale.
type ClueCache struct {
	db *sql.DB
}

// NewClueCache creates a new ClueCache instance.
func NewClueCache(db *sql.DB) (*ClueCache, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &ClueCache{db: db}, nil
}

// GetVariants retrieves every cached variant for answer at the given
// difficulty and locale. Returns (nil, false) if none exist or the
// database is unavailable -- a cache miss is not an error.
func (c *ClueCache) GetVariants(answer string, difficulty int, locale string) ([]CachedVariant, bool) {
	if c.db == nil {
		return nil, false
	}

	rows, err := c.db.Query(`
		SELECT clue, difficulty, ambiguity_notes FROM clue_cache
		WHERE answer = ? AND difficulty = ? AND locale = ?
	`, answer, difficulty, locale)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var variants []CachedVariant
	for rows.Next() {
		var v CachedVariant
		if err := rows.Scan(&v.Prompt, &v.Difficulty, &v.AmbiguityNotes); err != nil {
			return nil, false
		}
		variants = append(variants, v)
	}

	if len(variants) == 0 {
		return nil, false
	}
	return variants, true
}

// SaveVariant inserts a generated clue variant into the cache.
func (c *ClueCache) SaveVariant(answer string, locale string, v CachedVariant) error {
	if c.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if answer == "" {
		return fmt.Errorf("answer cannot be empty")
	}
	if v.Prompt == "" {
		return fmt.Errorf("clue cannot be empty")
	}
	if v.Difficulty < 1 || v.Difficulty > 5 {
		return fmt.Errorf("difficulty must be between 1 and 5, got %d", v.Difficulty)
	}

	_, err := c.db.Exec(`
		INSERT INTO clue_cache (answer, clue, difficulty, locale, ambiguity_notes)
		VALUES (?, ?, ?, ?, ?)
	`, answer, v.Prompt, v.Difficulty, locale, v.AmbiguityNotes)
	if err != nil {
		return fmt.Errorf("failed to save clue variant: %w", err)
	}

	return nil
}
