// Package storage provides SQLite-based persistence for the 2048 game.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Two kinds of data are kept: a score-history table with one row per
// finished game, and a small key-value table holding the high score
// (plain integer text) and the lifetime stats record (YAML text). Reads
// of the key-value records are get-or-default: a missing or corrupt
// record yields zero values, never an error the game has to handle.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Keys for the kv table records.
const (
	keyHighScore = "high_score"
	keyStats     = "stats"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished-game record.
type ScoreEntry struct {
	ID        int64
	Score     int
	MaxTile   int
	Moves     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(score, maxTile, moves int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (score, max_tile, moves) VALUES (?, ?, ?)",
		score, maxTile, moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N finished games, ordered by score descending.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, score, max_tile, moves, created_at
		 FROM scores
		 ORDER BY score DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Score, &e.MaxTile, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes the score history.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// parseTimestamp handles the driver returning either time.Time or string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// getValue reads a kv record. Absence is not an error: ok is false.
func (s *Store) getValue(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, true, nil
}

// setValue overwrites a kv record.
func (s *Store) setValue(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// HighScore returns the persisted high score, or 0 when the record is
// missing or unreadable.
func (s *Store) HighScore() (int, error) {
	value, ok, err := s.getValue(keyHighScore)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	score, err := strconv.Atoi(value)
	if err != nil {
		// Corrupt record: fall back to the default rather than failing.
		return 0, nil
	}
	return score, nil
}

// SaveHighScore overwrites the persisted high score.
func (s *Store) SaveHighScore(score int) error {
	return s.setValue(keyHighScore, strconv.Itoa(score))
}

// Stats returns the persisted lifetime stats, or a zeroed record when it is
// missing or unreadable.
func (s *Store) Stats() (engine.Stats, error) {
	value, ok, err := s.getValue(keyStats)
	if err != nil {
		return engine.Stats{}, err
	}
	if !ok {
		return engine.Stats{}, nil
	}

	var stats engine.Stats
	if err := yaml.Unmarshal([]byte(value), &stats); err != nil {
		// Corrupt record: fall back to zeroed stats.
		return engine.Stats{}, nil
	}
	return stats, nil
}

// SaveStats overwrites the persisted lifetime stats.
func (s *Store) SaveStats(stats engine.Stats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("storage: cannot encode stats: %w", err)
	}
	return s.setValue(keyStats, string(data))
}

// Ensure Store satisfies the engine's persistence contract.
var _ engine.Persister = (*Store)(nil)
