package output

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/beetlebugorg/huek250/pkg/huek"
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		vocabulary_version TEXT NOT NULL,
		catchments INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS hydrogeology_attributes (
		run_id TEXT NOT NULL,
		gauge_id TEXT NOT NULL,
		column_name TEXT NOT NULL,
		value REAL NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id)
	);

	CREATE INDEX IF NOT EXISTS idx_hydrogeology_attributes_run
		ON hydrogeology_attributes(run_id, gauge_id);
`

// SaveSQLite appends a run and its table in long format to the database
// at path. The database is created if it does not exist. Everything is
// written in one transaction.
func SaveSQLite(ctx context.Context, path string, run Run, table *huek.Table) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, started_at, vocabulary_version, catchments)
		VALUES (?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.VocabularyVersion,
		table.Len(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO hydrogeology_attributes (run_id, gauge_id, column_name, value)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range table.Rows {
		for i, v := range r.Values {
			if _, err := stmt.ExecContext(ctx, run.ID, r.ID, table.Columns[i], v); err != nil {
				return fmt.Errorf("insert %s/%s: %w", r.ID, table.Columns[i], err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
