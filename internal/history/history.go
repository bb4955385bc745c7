// Package history persists a record of past porting runs so operators can
// review what previous invocations touched.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

// Run is one recorded invocation of the porting engine.
type Run struct {
	ID               int
	RanAt            time.Time
	SourcePath       string
	TargetPath       string
	DryRun           bool
	ModifiedFiles    int
	ModifiedTypes    int
	ModifiedMembers  int
	ModifiedElements int
	Problems         int
	ExceptionsAdded  int
}

type DB struct {
	conn *sql.DB
}

func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_run_id START 1;`,

		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			ran_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			source_path TEXT NOT NULL,
			target_path TEXT NOT NULL,
			dry_run BOOLEAN NOT NULL,
			modified_files INTEGER NOT NULL,
			modified_types INTEGER NOT NULL,
			modified_members INTEGER NOT NULL,
			modified_elements INTEGER NOT NULL,
			problems INTEGER NOT NULL,
			exceptions_added INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs (ran_at)`,
	}

	for _, q := range queries {
		if _, err := db.conn.Exec(q); err != nil {
			return fmt.Errorf("executing %q: %w", q, err)
		}
	}
	return nil
}

// Record inserts one run. RanAt and ID are assigned by the database.
func (db *DB) Record(r Run) error {
	_, err := db.conn.Exec(
		`INSERT INTO runs (id, source_path, target_path, dry_run,
			modified_files, modified_types, modified_members, modified_elements,
			problems, exceptions_added)
		 VALUES (nextval('seq_run_id'), ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SourcePath, r.TargetPath, r.DryRun,
		r.ModifiedFiles, r.ModifiedTypes, r.ModifiedMembers, r.ModifiedElements,
		r.Problems, r.ExceptionsAdded,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (db *DB) Recent(limit int) ([]Run, error) {
	rows, err := db.conn.Query(
		`SELECT id, ran_at, source_path, target_path, dry_run,
			modified_files, modified_types, modified_members, modified_elements,
			problems, exceptions_added
		 FROM runs ORDER BY ran_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.RanAt, &r.SourcePath, &r.TargetPath, &r.DryRun,
			&r.ModifiedFiles, &r.ModifiedTypes, &r.ModifiedMembers, &r.ModifiedElements,
			&r.Problems, &r.ExceptionsAdded); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Clear removes all recorded runs.
func (db *DB) Clear() error {
	_, err := db.conn.Exec(`DELETE FROM runs`)
	return err
}
