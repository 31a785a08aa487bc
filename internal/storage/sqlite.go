// Package storage provides SQLite-based persistence for leaderboard scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
)

// SQLite extended result codes (https://sqlite.org/rescode.html).
const (
	sqliteConstraintCheck  = 275
	sqliteConstraintUnique = 2067
)

// Sentinel errors mapped from storage-level constraints.
var (
	// ErrDuplicateSubmission is returned when the unique
	// (identity_hash, window_bucket) index rejects an insert, i.e. the same
	// identity committed another score in the same submission window.
	ErrDuplicateSubmission = errors.New("storage: duplicate submission in window")

	// ErrConstraintViolated is returned when a CHECK constraint rejects an
	// insert and the failing bound cannot be identified.
	ErrConstraintViolated = errors.New("storage: check constraint violated")

	// ErrScoreOutOfBounds and ErrLevelOutOfBounds identify which named
	// CHECK constraint rejected the insert. Both match
	// ErrConstraintViolated under errors.Is.
	ErrScoreOutOfBounds = fmt.Errorf("%w: score out of bounds", ErrConstraintViolated)
	ErrLevelOutOfBounds = fmt.Errorf("%w: level out of bounds", ErrConstraintViolated)
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Score is a persisted high-score record. Rank is only populated on read
// paths that compute it; the identity hash is deliberately not exposed.
type Score struct {
	ID           int64
	Name         string
	Score        int
	LevelReached int
	CreatedAt    time.Time
	Rank         int
}

// Stats contains aggregate leaderboard statistics.
type Stats struct {
	TotalScores  int
	AverageScore int
	HighestScore int
	HighestLevel int
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

// migrate creates the database schema if it doesn't exist. The CHECK
// constraints repeat the API-level bounds as a second line of defense, and
// the unique (identity_hash, window_bucket) index closes the
// check-then-write race on the duplicate-submission window.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL DEFAULT 'Anonymous',
			score INTEGER NOT NULL CONSTRAINT score_bounds CHECK (score >= 0 AND score <= 999999),
			level_reached INTEGER NOT NULL CONSTRAINT level_bounds CHECK (level_reached >= 1 AND level_reached <= 100),
			identity_hash TEXT NOT NULL,
			window_bucket INTEGER NOT NULL,
			created_at DATETIME DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_rank
			ON high_scores(score DESC, created_at ASC);
		CREATE INDEX IF NOT EXISTS idx_high_scores_identity
			ON high_scores(identity_hash, created_at);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_high_scores_window
			ON high_scores(identity_hash, window_bucket);
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

// Ping checks store reachability for the health probe.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("storage: ping failed: %w", err)
	}
	return nil
}

// InsertScore persists a validated score and returns the stored record.
// window sizes the duplicate bucket; two inserts from the same identity
// whose submission times land in the same bucket fail with
// ErrDuplicateSubmission. Out-of-bounds values fail with
// ErrConstraintViolated.
func (s *Store) InsertScore(ctx context.Context, name string, score, level int, identityHash string, window time.Duration) (*Score, error) {
	bucket := windowBucket(time.Now(), window)

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO high_scores (name, score, level_reached, identity_hash, window_bucket)
		 VALUES (?, ?, ?, ?, ?)`,
		name, score, level, identityHash, bucket,
	)
	if err != nil {
		switch sqliteCode(err) {
		case sqliteConstraintUnique:
			return nil, fmt.Errorf("%w: %v", ErrDuplicateSubmission, err)
		case sqliteConstraintCheck:
			return nil, fmt.Errorf("%w: %v", checkConstraintErr(err), err)
		}
		return nil, fmt.Errorf("storage: cannot insert score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return s.scoreByID(ctx, id)
}

// windowBucket maps a submission time to its duplicate-window bucket. A
// non-positive window disables bucketing by giving every insert its own
// bucket.
func windowBucket(at time.Time, window time.Duration) int64 {
	secs := int64(window / time.Second)
	if secs <= 0 {
		return at.UnixNano()
	}
	return at.Unix() / secs
}

// scoreByID retrieves a single record.
func (s *Store) scoreByID(ctx context.Context, id int64) (*Score, error) {
	var sc Score
	var createdAt any

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, score, level_reached, created_at
		 FROM high_scores WHERE id = ?`,
		id,
	).Scan(&sc.ID, &sc.Name, &sc.Score, &sc.LevelReached, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query score %d: %w", id, err)
	}

	sc.CreatedAt = parseTimestamp(createdAt)
	return &sc, nil
}

// RecentSubmission reports whether the identity has an accepted submission
// within the given window.
func (s *Store) RecentSubmission(ctx context.Context, identityHash string, window time.Duration) (bool, error) {
	cutoff := time.Now().UTC().Add(-window).Format("2006-01-02 15:04:05.000")

	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM high_scores
		 WHERE identity_hash = ? AND created_at > ?
		 LIMIT 1`,
		identityHash, cutoff,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot check recent submissions: %w", err)
	}
	return true, nil
}

// Rank returns the 1-based leaderboard position of a stored record:
// 1 + the number of entries with a strictly higher score, or an equal score
// and earlier creation. Same-timestamp ties fall back to insertion order.
func (s *Store) Rank(ctx context.Context, id int64) (int, error) {
	var rank int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) + 1
		 FROM high_scores h, high_scores me
		 WHERE me.id = ?
		   AND (h.score > me.score
		     OR (h.score = me.score AND h.created_at < me.created_at)
		     OR (h.score = me.score AND h.created_at = me.created_at AND h.id < me.id))`,
		id,
	).Scan(&rank)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot compute rank: %w", err)
	}
	return rank, nil
}

// TopScores retrieves a page of the leaderboard ordered by score descending,
// earlier submission first on ties. Rank is computed over the full table, so
// page N+1 continues where page N left off.
func (s *Store) TopScores(ctx context.Context, limit, offset int) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, score, level_reached, created_at,
		        ROW_NUMBER() OVER (ORDER BY score DESC, created_at ASC, id ASC) AS rank
		 FROM high_scores
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []Score
	for rows.Next() {
		var sc Score
		var createdAt any
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Score, &sc.LevelReached, &createdAt, &sc.Rank); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sc.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregate leaderboard statistics.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(CAST(ROUND(AVG(score)) AS INTEGER), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MAX(level_reached), 0)
		 FROM high_scores`,
	).Scan(&st.TotalScores, &st.AverageScore, &st.HighestScore, &st.HighestLevel)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return &st, nil
}

// CountScores returns the number of persisted scores.
func (s *Store) CountScores(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM high_scores").Scan(&count); err != nil {
		return 0, fmt.Errorf("storage: cannot count scores: %w", err)
	}
	return count, nil
}

// ClearScores deletes all scores.
func (s *Store) ClearScores(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// checkConstraintErr picks the sentinel for a CHECK failure. The driver
// message carries the violated constraint's name, which is why the schema
// names its bounds.
func checkConstraintErr(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "level_bounds"):
		return ErrLevelOutOfBounds
	case strings.Contains(msg, "score_bounds"):
		return ErrScoreOutOfBounds
	}
	return ErrConstraintViolated
}

// sqliteCode extracts the extended result code from a driver error, or 0.
func sqliteCode(err error) int {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}

// parseTimestamp handles the driver returning either time.Time or the raw
// DATETIME string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05.999", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
