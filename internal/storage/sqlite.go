// Package storage provides SQLite-based persistence for finished grooming runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snowgroomer/internal/level"
)

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// Run is one finished attempt at a level.
// SeedCode and Rank identify what the player asked for; UsedSeedCode is the
// seed the generator actually settled on.
type Run struct {
	ID           string
	SeedCode     string
	Rank         level.Difficulty
	UsedSeedCode string
	LevelID      int
	LevelName    string
	TimeLimit    int
	ElapsedSecs  int
	Coverage     int
	Completed    bool
	Stars        int
	CreatedAt    time.Time
}

// NewRun builds a run record for d and rates it with level.Stars. rank is
// the rank the level was requested with, which differs from d.Difficulty
// when the pool rolled a park.
func NewRun(d level.Descriptor, rank level.Difficulty, seedCode, usedSeedCode string, elapsedSecs, coverage int, completed bool) Run {
	return Run{
		SeedCode:     seedCode,
		Rank:         rank,
		UsedSeedCode: usedSeedCode,
		LevelID:      d.ID,
		LevelName:    d.Name,
		TimeLimit:    d.TimeLimit,
		ElapsedSecs:  elapsedSecs,
		Coverage:     coverage,
		Completed:    completed,
		Stars:        level.Stars(d, elapsedSecs, coverage, completed),
	}
}

// RunStats aggregates the runs recorded for one seed code and rank.
type RunStats struct {
	Runs        int
	Completed   int
	BestStars   int
	BestElapsed int // fastest completed run, 0 if none
	LastPlayed  time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed_code TEXT NOT NULL,
			rank TEXT NOT NULL,
			used_seed_code TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			level_name TEXT NOT NULL,
			time_limit INTEGER NOT NULL DEFAULT 0,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			coverage INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seed_rank ON runs(seed_code, rank);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records r. A missing ID or CreatedAt is filled in; the stored
// record is returned.
func (s *Store) SaveRun(r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, seed_code, rank, used_seed_code, level_id, level_name, time_limit,
		  elapsed_secs, coverage, completed, stars, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.SeedCode,
		string(r.Rank),
		r.UsedSeedCode,
		r.LevelID,
		r.LevelName,
		r.TimeLimit,
		r.ElapsedSecs,
		r.Coverage,
		r.Completed,
		r.Stars,
		r.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r, nil
}

const runColumns = `id, seed_code, rank, used_seed_code, level_id, level_name,
	time_limit, elapsed_secs, coverage, completed, stars, created_at`

// RecentRuns returns the most recent runs across all seeds, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// RunsFor returns every run of one seed code and rank, newest first.
func (s *Store) RunsFor(seedCode string, rank level.Difficulty) ([]Run, error) {
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE seed_code = ? AND rank = ?
		 ORDER BY created_at DESC, rowid DESC`,
		seedCode, string(rank),
	)
}

// BestRun returns the highest rated run of one seed code and rank: most
// stars, then fastest, then best coverage. Returns nil if none exist.
func (s *Store) BestRun(seedCode string, rank level.Difficulty) (*Run, error) {
	runs, err := s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE seed_code = ? AND rank = ?
		 ORDER BY stars DESC, completed DESC, elapsed_secs ASC, coverage DESC, rowid ASC
		 LIMIT 1`,
		seedCode, string(rank),
	)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// Stats aggregates the runs of one seed code and rank.
func (s *Store) Stats(seedCode string, rank level.Difficulty) (*RunStats, error) {
	stats := &RunStats{}
	var lastPlayed sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(MAX(stars), 0),
		        COALESCE(MIN(CASE WHEN completed = 1 THEN elapsed_secs END), 0),
		        MAX(created_at)
		 FROM runs WHERE seed_code = ? AND rank = ?`,
		seedCode, string(rank),
	).Scan(&stats.Runs, &stats.Completed, &stats.BestStars, &stats.BestElapsed, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}
	return stats, nil
}

// DeleteRun removes one run by id.
func (s *Store) DeleteRun(id string) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: run %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var rank, createdAt string
		if err := rows.Scan(
			&r.ID,
			&r.SeedCode,
			&rank,
			&r.UsedSeedCode,
			&r.LevelID,
			&r.LevelName,
			&r.TimeLimit,
			&r.ElapsedSecs,
			&r.Coverage,
			&r.Completed,
			&r.Stars,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Rank = level.Difficulty(rank)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

func parseTime(v string) time.Time {
	if t, err := time.Parse(timeLayout, v); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t
	}
	return time.Time{}
}

// IsNotFound reports whether err came from a lookup that matched nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
