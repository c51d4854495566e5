// Package storage provides SQLite-based persistence for search run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry represents a single recorded search run.
type RunEntry struct {
	ID         int64
	MapID      string
	StartX     int
	StartY     int
	EndX       int
	EndY       int
	Metric     string
	Moves      string
	Found      bool
	PathLen    int
	Expanded   int
	DurationMS int64
	CreatedAt  time.Time
}

// MapStats contains aggregated statistics for a map.
type MapStats struct {
	MapID       string
	RunsCount   int
	FoundCount  int
	BestPathLen int
	AvgExpanded float64
	LastRun     time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			map_id TEXT NOT NULL,
			start_x INTEGER NOT NULL,
			start_y INTEGER NOT NULL,
			end_x INTEGER NOT NULL,
			end_y INTEGER NOT NULL,
			metric TEXT NOT NULL,
			moves TEXT NOT NULL,
			found INTEGER NOT NULL DEFAULT 0,
			path_len INTEGER NOT NULL DEFAULT 0,
			expanded INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_map_id ON runs(map_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(map_id, found, path_len);
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

// SaveRun records a search run. Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (map_id, start_x, start_y, end_x, end_y, metric, moves, found, path_len, expanded, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.MapID,
		run.StartX, run.StartY,
		run.EndX, run.EndY,
		run.Metric,
		run.Moves,
		run.Found,
		run.PathLen,
		run.Expanded,
		run.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, map_id, start_x, start_y, end_x, end_y, metric, moves, found, path_len, expanded, duration_ms, created_at`

// RecentRuns retrieves the most recent runs across all maps.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunsForMap retrieves the most recent runs for the given map.
func (s *Store) RunsForMap(mapID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE map_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mapID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// BestRun returns the shortest successful run for the given map.
// Returns nil if no successful run exists.
func (s *Store) BestRun(mapID string) (*RunEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE map_id = ? AND found = 1
		 ORDER BY path_len ASC, id ASC
		 LIMIT 1`,
		mapID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	defer rows.Close()

	entries, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// GetMapStats retrieves aggregated statistics for a specific map.
func (s *Store) GetMapStats(mapID string) (*MapStats, error) {
	stats := &MapStats{MapID: mapID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(found), 0),
		        COALESCE(MIN(CASE WHEN found = 1 THEN path_len END), 0),
		        COALESCE(AVG(expanded), 0)
		 FROM runs WHERE map_id = ?`,
		mapID,
	).Scan(&stats.RunsCount, &stats.FoundCount, &stats.BestPathLen, &stats.AvgExpanded)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}

	// Get last run time
	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE map_id = ? ORDER BY id DESC LIMIT 1`,
		mapID,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTimestamp(lastRun)
	}

	return stats, nil
}

// ClearRuns deletes all runs for the given map.
func (s *Store) ClearRuns(mapID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE map_id = ?", mapID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// scanRuns reads RunEntry rows from an executed query.
func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.MapID,
			&e.StartX, &e.StartY,
			&e.EndX, &e.EndY,
			&e.Metric,
			&e.Moves,
			&e.Found,
			&e.PathLen,
			&e.Expanded,
			&e.DurationMS,
			&createdAt,
		); err != nil {
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

// parseTimestamp handles the driver returning either time.Time or a string.
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
