// Package store contains the SQLite repository for filter runs.
//
// All database read/write operations for runs and their per-trial
// trajectories belong here rather than in the hgf package, which stays a
// pure computation layer with no SQL noise.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schema is bootstrapped on Open; both tables are idempotent to create.
const schema = `
	CREATE TABLE IF NOT EXISTS hgf_runs (
		run_id        TEXT PRIMARY KEY,
		created_at_ns INTEGER NOT NULL,
		trials        INTEGER NOT NULL,
		status        TEXT NOT NULL,
		failure_trial INTEGER,
		params_json   TEXT NOT NULL,
		summary_json  TEXT
	);

	CREATE TABLE IF NOT EXISTS hgf_trials (
		run_id  TEXT NOT NULL,
		trial   INTEGER NOT NULL,
		mu1     REAL NOT NULL,
		mu2     REAL NOT NULL,
		mu3     REAL NOT NULL,
		sa1     REAL NOT NULL,
		sa2     REAL NOT NULL,
		sa3     REAL NOT NULL,
		mu1hat  REAL NOT NULL,
		mu2hat  REAL NOT NULL,
		mu3hat  REAL NOT NULL,
		sa1hat  REAL NOT NULL,
		sa2hat  REAL NOT NULL,
		sa3hat  REAL NOT NULL,
		w2      REAL NOT NULL,
		da1     REAL NOT NULL,
		da2     REAL NOT NULL,
		PRIMARY KEY (run_id, trial),
		FOREIGN KEY (run_id) REFERENCES hgf_runs(run_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_hgf_runs_created ON hgf_runs(created_at_ns);
`

// Open opens (creating if necessary) the run database at path and ensures
// the schema exists. Foreign keys are enabled through the DSN so every
// pooled connection enforces the trial-row cascade.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

func nullInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
