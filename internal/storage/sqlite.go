// Package storage keeps finished runs in an in-memory SQLite database so
// every SSH session of one server process sees the same leaderboard.
// Nothing is written to disk; the data lives as long as the process.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/leaderboard"
)

// Store manages the SQLite connection holding run results.
type Store struct {
	db *sql.DB
}

// Result is one stored run.
type Result struct {
	ID        string // UUID
	SessionID string
	Entry     leaderboard.Entry
	CreatedAt time.Time
}

// Stats aggregates every stored run.
type Stats struct {
	Runs      int
	HighScore int
	AvgScore  float64
	Sessions  int
}

// Open creates a fresh in-memory database and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			speed REAL NOT NULL,
			time_secs REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_rank ON results(score DESC, time_secs ASC, seq ASC);
		CREATE INDEX IF NOT EXISTS idx_results_session ON results(session_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection. All results are lost.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a run for the given session and returns its id.
func (s *Store) SaveResult(sessionID string, e leaderboard.Entry) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO results (id, session_id, name, score, speed, time_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, sessionID, e.Name, e.Score, e.Speed, e.Time,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return id, nil
}

// Top returns the best runs in leaderboard order: score descending,
// then time ascending, then insertion order.
func (s *Store) Top(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT id, session_id, name, score, speed, time_secs, created_at
		 FROM results
		 ORDER BY score DESC, time_secs ASC, seq ASC
		 LIMIT ?`,
		limit,
	)
}

// SessionResults returns every run of one session, oldest first.
func (s *Store) SessionResults(sessionID string) ([]Result, error) {
	return s.query(
		`SELECT id, session_id, name, score, speed, time_secs, created_at
		 FROM results
		 WHERE session_id = ?
		 ORDER BY seq ASC`,
		sessionID,
	)
}

func (s *Store) query(q string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Entry.Name, &r.Entry.Score,
			&r.Entry.Speed, &r.Entry.Time, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// Trim deletes every run ranked below the first keep.
func (s *Store) Trim(keep int) error {
	_, err := s.db.Exec(
		`DELETE FROM results WHERE seq NOT IN (
			SELECT seq FROM results
			ORDER BY score DESC, time_secs ASC, seq ASC
			LIMIT ?
		)`,
		max(keep, 0),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot trim results: %w", err)
	}
	return nil
}

// Stats returns aggregate numbers over all stored runs.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COUNT(DISTINCT session_id)
		 FROM results`,
	).Scan(&st.Runs, &st.HighScore, &st.AvgScore, &st.Sessions)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}

// parseTime handles both time.Time and the SQLite text form.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
