// Package report keeps a SQLite ledger of moderator runs: which
// fingerprint maps were compared, and the difference number of each
// resulting difference map.
package report

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DB is the comparison ledger. Schema changes are applied by embedded
// migrations on Open.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the ledger at path and migrates it to the
// latest schema version.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}

	db := &DB{sqlDB}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate ledger %s: %w", path, err)
	}
	return db, nil
}

// BeginRun records a new moderator run and returns its id.
func (db *DB) BeginRun(note string) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO runs (run_id, note) VALUES (?, ?)`,
		runID, note,
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return runID, nil
}

// RecordComparison appends one computed difference map to a run.
func (db *DB) RecordComparison(runID, reference, probe string, diffNumber float64, mapLines int) error {
	_, err := db.Exec(
		`INSERT INTO comparisons (run_id, reference, probe, diff_number, map_lines)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, reference, probe, diffNumber, mapLines,
	)
	if err != nil {
		return fmt.Errorf("record comparison %s vs %s: %w", reference, probe, err)
	}
	return nil
}

// Comparison is one ledger row.
type Comparison struct {
	RunID      string
	Reference  string
	Probe      string
	DiffNumber float64
	MapLines   int
	CreatedAt  time.Time
}

// Comparisons lists the comparisons of a run, most different first.
func (db *DB) Comparisons(runID string) ([]Comparison, error) {
	rows, err := db.Query(
		`SELECT run_id, reference, probe, diff_number, map_lines, created_at
		 FROM comparisons WHERE run_id = ?
		 ORDER BY diff_number DESC, reference, probe`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query comparisons: %w", err)
	}
	defer rows.Close()

	var out []Comparison
	for rows.Next() {
		var c Comparison
		if err := rows.Scan(&c.RunID, &c.Reference, &c.Probe, &c.DiffNumber, &c.MapLines, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comparison: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
