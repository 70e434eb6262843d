// Package storage provides SQLite-based persistence for level records and unlocks.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/escape/internal/game"
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// RecordEntry is a stored best time.
type RecordEntry struct {
	LevelID   int
	Record    game.Record
	UpdatedAt time.Time
}

// LevelStats contains aggregated completion statistics for a level.
type LevelStats struct {
	LevelID     int
	Completions int
	BestTenths  int
	AvgTenths   float64
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

	// Test connection
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
		CREATE TABLE IF NOT EXISTS records (
			level_id INTEGER PRIMARY KEY,
			time_tenths INTEGER NOT NULL,
			holder TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS unlocked_levels (
			level_id INTEGER PRIMARY KEY,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id INTEGER NOT NULL,
			time_tenths INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level_id ON completions(level_id);
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

// SaveRecord stores the best time for a level, replacing any previous one.
func (s *Store) SaveRecord(levelID int, r game.Record) error {
	_, err := s.db.Exec(
		`INSERT INTO records (level_id, time_tenths, holder, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(level_id) DO UPDATE SET
		   time_tenths = excluded.time_tenths,
		   holder = excluded.holder,
		   updated_at = excluded.updated_at`,
		levelID, r.Tenths, r.Holder,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save record: %w", err)
	}
	return nil
}

// Record returns the stored record for a level.
// Returns false if the level has no record.
func (s *Store) Record(levelID int) (game.Record, bool, error) {
	var r game.Record
	err := s.db.QueryRow(
		"SELECT time_tenths, holder FROM records WHERE level_id = ?",
		levelID,
	).Scan(&r.Tenths, &r.Holder)

	if err == sql.ErrNoRows {
		return game.Record{}, false, nil
	}
	if err != nil {
		return game.Record{}, false, fmt.Errorf("storage: cannot query record: %w", err)
	}
	return r, true, nil
}

// AllRecords retrieves every stored record ordered by level.
func (s *Store) AllRecords() ([]RecordEntry, error) {
	rows, err := s.db.Query(
		`SELECT level_id, time_tenths, holder, updated_at
		 FROM records
		 ORDER BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var entries []RecordEntry
	for rows.Next() {
		var e RecordEntry
		var updatedAt any
		if err := rows.Scan(&e.LevelID, &e.Record.Tenths, &e.Record.Holder, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LoadRecords returns every stored record keyed by level.
func (s *Store) LoadRecords() (map[int]game.Record, error) {
	entries, err := s.AllRecords()
	if err != nil {
		return nil, err
	}
	out := make(map[int]game.Record, len(entries))
	for _, e := range entries {
		out[e.LevelID] = e.Record
	}
	return out, nil
}

// DeleteRecord removes the record for a level.
func (s *Store) DeleteRecord(levelID int) error {
	_, err := s.db.Exec("DELETE FROM records WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete record: %w", err)
	}
	return nil
}

// SaveUnlocked marks levels as unlocked. Already unlocked levels keep their timestamp.
func (s *Store) SaveUnlocked(levelIDs ...int) error {
	if len(levelIDs) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO unlocked_levels (level_id) VALUES (?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare unlock: %w", err)
	}
	defer stmt.Close()

	for _, id := range levelIDs {
		if _, err := stmt.Exec(id); err != nil {
			return fmt.Errorf("storage: cannot save unlock for level %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit unlocks: %w", err)
	}
	return nil
}

// LoadUnlocked returns the unlocked level ids in ascending order.
func (s *Store) LoadUnlocked() ([]int, error) {
	rows, err := s.db.Query("SELECT level_id FROM unlocked_levels ORDER BY level_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocked levels: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return ids, nil
}

// SaveCompletion logs one finished run of a level.
func (s *Store) SaveCompletion(levelID, tenths int) error {
	_, err := s.db.Exec(
		"INSERT INTO completions (level_id, time_tenths) VALUES (?, ?)",
		levelID, tenths,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save completion: %w", err)
	}
	return nil
}

// AllLevelStats retrieves completion statistics for every level that has been finished.
func (s *Store) AllLevelStats() (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(time_tenths), AVG(time_tenths), MAX(created_at)
		 FROM completions
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Completions, &st.BestTenths, &st.AvgTenths, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearProgress deletes all records, unlocks and completion history.
func (s *Store) ClearProgress() error {
	_, err := s.db.Exec(`
		DELETE FROM records;
		DELETE FROM unlocked_levels;
		DELETE FROM completions;
	`)
	if err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values.
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
