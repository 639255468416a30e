// Package storage provides SQLite-based persistence for solved levels.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Solve is one completed level.
type Solve struct {
	ID        int64
	PackID    string
	Level     int // 0-based index within the pack
	LevelName string
	Steps     int
	Player    string
	CreatedAt time.Time
}

// LevelBest is the best (fewest steps) solve of one level.
type LevelBest struct {
	Level     int
	LevelName string
	Steps     int
	Player    string
	Solves    int // how many times the level was solved
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			level_name TEXT NOT NULL DEFAULT '',
			steps INTEGER NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_pack ON solves(pack_id);
		CREATE INDEX IF NOT EXISTS idx_solves_best ON solves(pack_id, level, steps ASC);
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

// SaveSolve records a solved level and returns the new row ID.
func (s *Store) SaveSolve(solve Solve) (int64, error) {
	if solve.PackID == "" {
		return 0, errors.New("storage: cannot save solve: empty pack id")
	}
	if solve.Level < 0 || solve.Steps < 0 {
		return 0, fmt.Errorf("storage: cannot save solve: invalid level %d or steps %d", solve.Level, solve.Steps)
	}

	result, err := s.db.Exec(
		"INSERT INTO solves (pack_id, level, level_name, steps, player) VALUES (?, ?, ?, ?, ?)",
		solve.PackID, solve.Level, solve.LevelName, solve.Steps, solve.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestSteps returns the fewest steps any solve of the level took.
// ok is false when the level was never solved.
func (s *Store) BestSteps(packID string, level int) (steps int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(steps) FROM solves WHERE pack_id = ? AND level = ?",
		packID, level,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best steps: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// TopSolves returns the best solves of one level, fewest steps first.
// Ties go to whoever solved it first.
func (s *Store) TopSolves(packID string, level, limit int) ([]Solve, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, pack_id, level, level_name, steps, player, created_at
		 FROM solves
		 WHERE pack_id = ? AND level = ?
		 ORDER BY steps ASC, id ASC
		 LIMIT ?`,
		packID, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var entries []Solve
	for rows.Next() {
		var e Solve
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PackID, &e.Level, &e.LevelName, &e.Steps, &e.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// PackBests returns the best solve of every solved level in a pack,
// ordered by level.
func (s *Store) PackBests(packID string) ([]LevelBest, error) {
	rows, err := s.db.Query(
		`SELECT s.level, s.level_name, s.steps, s.player, c.n
		 FROM solves s
		 JOIN (
			SELECT level, MIN(steps) AS best, COUNT(*) AS n
			FROM solves WHERE pack_id = ? GROUP BY level
		 ) c ON c.level = s.level AND c.best = s.steps
		 WHERE s.pack_id = ?
		 AND s.id = (
			SELECT MIN(id) FROM solves
			WHERE pack_id = s.pack_id AND level = s.level AND steps = s.steps
		 )
		 ORDER BY s.level`,
		packID, packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pack bests: %w", err)
	}
	defer rows.Close()

	var bests []LevelBest
	for rows.Next() {
		var b LevelBest
		if err := rows.Scan(&b.Level, &b.LevelName, &b.Steps, &b.Player, &b.Solves); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		bests = append(bests, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return bests, nil
}

// ClearSolves deletes all solves for a pack.
func (s *Store) ClearSolves(packID string) error {
	if _, err := s.db.Exec("DELETE FROM solves WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("storage: cannot clear solves: %w", err)
	}
	return nil
}

// PackStats contains aggregated statistics for a pack.
type PackStats struct {
	PackID       string
	Solves       int
	LevelsSolved int
	FewestSteps  int
	LastPlayed   time.Time
}

// GetPackStats retrieves aggregated statistics for one pack.
func (s *Store) GetPackStats(packID string) (*PackStats, error) {
	stats := &PackStats{PackID: packID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT level), COALESCE(MIN(steps), 0), MAX(created_at)
		 FROM solves WHERE pack_id = ?`,
		packID,
	).Scan(&stats.Solves, &stats.LevelsSolved, &stats.FewestSteps, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllPackStats retrieves statistics for every pack that has solves.
func (s *Store) GetAllPackStats() (map[string]*PackStats, error) {
	rows, err := s.db.Query(
		`SELECT pack_id, COUNT(*), COUNT(DISTINCT level), MIN(steps), MAX(created_at)
		 FROM solves
		 GROUP BY pack_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all pack stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PackStats)
	for rows.Next() {
		var ps PackStats
		var lastPlayed any
		if err := rows.Scan(&ps.PackID, &ps.Solves, &ps.LevelsSolved, &ps.FewestSteps, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.PackID] = &ps
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
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
