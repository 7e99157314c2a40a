// Package storage provides SQLite-based persistence for exploration runs.
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

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one recorded exploration run.
type Run struct {
	ID        string // UUID
	MapID     string
	Steps     int
	Bumps     int
	Explored  int
	Duration  time.Duration
	Completed bool
	CreatedAt time.Time
}

// MapStats contains aggregated statistics for a map.
type MapStats struct {
	MapID        string
	Runs         int
	Completed    int
	FewestSteps  int // Over completed runs, 0 if none
	FastestTime  time.Duration
	MostExplored int
	TotalSteps   int64
	LastPlayed   time.Time
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
			map_id TEXT NOT NULL,
			steps INTEGER NOT NULL,
			bumps INTEGER NOT NULL DEFAULT 0,
			explored INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_map_id ON runs(map_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(map_id, completed DESC, steps, duration_ms);
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

// SaveRun records a run for the given map and returns it with its new ID.
func (s *Store) SaveRun(mapID string, sum core.RunSummary) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		MapID:     mapID,
		Steps:     sum.Steps,
		Bumps:     sum.Bumps,
		Explored:  sum.Explored,
		Duration:  sum.Duration,
		Completed: sum.Completed,
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, map_id, steps, bumps, explored, duration_ms, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.MapID, run.Steps, run.Bumps, run.Explored, run.Duration.Milliseconds(), run.Completed,
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run, nil
}

// rankOrder sorts completed runs by fewest steps then fastest time, and
// unfinished runs after them by most tiles explored.
const rankOrder = `ORDER BY completed DESC,
		 CASE WHEN completed = 1 THEN steps ELSE -explored END ASC,
		 duration_ms ASC,
		 created_at ASC`

const runColumns = `id, map_id, steps, bumps, explored, duration_ms, completed, created_at`

// TopRuns retrieves the best N runs for the given map.
func (s *Store) TopRuns(mapID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE map_id = ? `+rankOrder+` LIMIT ?`,
		mapID, limit,
	)
}

// AllRuns retrieves all runs for the given map (no limit), best first.
func (s *Store) AllRuns(mapID string) ([]Run, error) {
	return s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE map_id = ? `+rankOrder, mapID)
}

// BestRun returns the best completed run for the map, or nil if the map
// has never been completed.
func (s *Store) BestRun(mapID string) (*Run, error) {
	runs, err := s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE map_id = ? AND completed = 1 `+rankOrder+` LIMIT 1`,
		mapID,
	)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes all runs for the given map.
func (s *Store) ClearRuns(mapID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE map_id = ?", mapID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
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
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.MapID, &r.Steps, &r.Bumps, &r.Explored, &durationMS, &r.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// GetMapStats retrieves aggregated statistics for a specific map.
func (s *Store) GetMapStats(mapID string) (*MapStats, error) {
	stats := &MapStats{MapID: mapID}

	var fewest, fastest sql.NullInt64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(completed), 0),
		        MIN(CASE WHEN completed = 1 THEN steps END),
		        MIN(CASE WHEN completed = 1 THEN duration_ms END),
		        COALESCE(MAX(explored), 0),
		        COALESCE(SUM(steps), 0),
		        MAX(created_at)
		 FROM runs WHERE map_id = ?`,
		mapID,
	).Scan(&stats.Runs, &stats.Completed, &fewest, &fastest, &stats.MostExplored, &stats.TotalSteps, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}

	if fewest.Valid {
		stats.FewestSteps = int(fewest.Int64)
	}
	if fastest.Valid {
		stats.FastestTime = time.Duration(fastest.Int64) * time.Millisecond
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllMapStats retrieves statistics for every map that has runs.
func (s *Store) GetAllMapStats() (map[string]*MapStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT map_id FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list maps: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan map id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	stats := make(map[string]*MapStats, len(ids))
	for _, id := range ids {
		st, err := s.GetMapStats(id)
		if err != nil {
			return nil, err
		}
		stats[id] = st
	}
	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
