// Package storage is the durable puzzle store: Postgres for the
// authoritative "puzzles" table, Redis as a cache-aside read path.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/lesmotsdatche/crossgen/internal/domain"
)

// Store is the {get, put, update_status} puzzle store used by both the
// HTTP API and any offline batch job that publishes generated puzzles.
type Store struct {
	DB    *sql.DB
	Redis *redis.Client
}

// New opens the Postgres and Redis connections and verifies both are
// reachable before returning.
func New(postgresURL, redisURL string) (*Store, error) {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

func (s *Store) Close() error {
	if err := s.DB.Close(); err != nil {
		return err
	}
	return s.Redis.Close()
}

// InitSchema creates the puzzles table if it does not already exist.
func (s *Store) InitSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS puzzles (
		id VARCHAR(36) PRIMARY KEY,
		date DATE UNIQUE NOT NULL,
		language VARCHAR(2) NOT NULL DEFAULT 'fr',
		title VARCHAR(255) NOT NULL,
		author VARCHAR(100) NOT NULL,
		difficulty INTEGER NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'draft',
		body JSONB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		published_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_puzzles_date ON puzzles(date);
	CREATE INDEX IF NOT EXISTS idx_puzzles_status ON puzzles(status);
	`

	_, err := s.DB.Exec(schema)
	return err
}

func cacheKey(date string) string {
	return "puzzle:" + date
}

// Get returns the puzzle stored for the given date, whatever its status,
// preferring the Redis cache and falling back to Postgres on a miss. A
// (nil, nil) return means no puzzle exists for that date.
func (s *Store) Get(ctx context.Context, date string) (*domain.Puzzle, error) {
	if cached, err := s.Redis.Get(ctx, cacheKey(date)).Result(); err == nil && cached != "" {
		var puzzle domain.Puzzle
		if json.Unmarshal([]byte(cached), &puzzle) == nil {
			return &puzzle, nil
		}
	}

	var body []byte
	var status string
	var publishedAt sql.NullTime
	err := s.DB.QueryRowContext(ctx, `
		SELECT body, status, published_at FROM puzzles WHERE date = $1
	`, date).Scan(&body, &status, &publishedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query puzzle: %w", err)
	}

	var puzzle domain.Puzzle
	if err := json.Unmarshal(body, &puzzle); err != nil {
		return nil, fmt.Errorf("failed to decode stored puzzle: %w", err)
	}
	puzzle.Status = domain.PuzzleStatus(status)
	if publishedAt.Valid {
		puzzle.PublishedAt = publishedAt.Time
	}

	if cachedBody, err := json.Marshal(&puzzle); err == nil {
		s.Redis.Set(ctx, cacheKey(date), cachedBody, 24*time.Hour)
	}

	return &puzzle, nil
}

// Put inserts or replaces the puzzle record for its date and refreshes
// the Redis cache entry.
func (s *Store) Put(ctx context.Context, puzzle *domain.Puzzle) error {
	body, err := json.Marshal(puzzle)
	if err != nil {
		return fmt.Errorf("failed to encode puzzle: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO puzzles (id, date, language, title, author, difficulty, status, body, created_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (date) DO UPDATE SET
			id = EXCLUDED.id,
			language = EXCLUDED.language,
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			difficulty = EXCLUDED.difficulty,
			status = EXCLUDED.status,
			body = EXCLUDED.body,
			published_at = EXCLUDED.published_at
	`, puzzle.ID, puzzle.Date, puzzle.Language, puzzle.Title, puzzle.Author,
		puzzle.Difficulty, puzzle.Status, body, puzzle.CreatedAt, nullableTime(puzzle.PublishedAt))
	if err != nil {
		return fmt.Errorf("failed to store puzzle: %w", err)
	}

	s.Redis.Set(ctx, cacheKey(puzzle.Date), body, 24*time.Hour)

	return nil
}

// UpdateStatus transitions a puzzle's lifecycle status and, when
// publishing, stamps PublishedAt. The Redis cache entry is invalidated
// so the next Get repopulates it from Postgres.
func (s *Store) UpdateStatus(ctx context.Context, date string, status domain.PuzzleStatus) error {
	query := `UPDATE puzzles SET status = $2`
	if status == domain.StatusPublished {
		query += `, published_at = CURRENT_TIMESTAMP`
	}
	query += ` WHERE date = $1`

	res, err := s.DB.ExecContext(ctx, query, date, status)
	if err != nil {
		return fmt.Errorf("failed to update puzzle status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm status update: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	s.Redis.Del(ctx, cacheKey(date))

	return nil
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
