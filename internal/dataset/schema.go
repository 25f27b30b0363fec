package dataset

import (
	"database/sql"
	"fmt"
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
    run_id        TEXT PRIMARY KEY,
    language      TEXT NOT NULL,
    started_at    TEXT NOT NULL,
    completed_at  TEXT,
    total_samples INTEGER NOT NULL DEFAULT 0
)`

const createSamplesTable = `
CREATE TABLE IF NOT EXISTS samples (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id        TEXT NOT NULL REFERENCES runs(run_id),
    sample_hash   TEXT NOT NULL,
    repo_name     TEXT NOT NULL,
    repo_url      TEXT NOT NULL,
    repo_license  TEXT NOT NULL,
    commit_sha    TEXT NOT NULL,
    file_path     TEXT NOT NULL,
    method_name   TEXT NOT NULL,
    start_line    INTEGER NOT NULL,
    end_line      INTEGER NOT NULL,
    signature     TEXT NOT NULL,
    original_code TEXT NOT NULL,
    code_tokens   TEXT NOT NULL
)`

// Dedup happens here: inserts use OR IGNORE against this index, so a method
// seen twice (same repo, path, name, and code) lands once.
const createSampleHashIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_samples_hash ON samples(sample_hash)`

const createSampleRepoIndex = `
CREATE INDEX IF NOT EXISTS idx_samples_repo ON samples(repo_name, file_path)`

// CreateSchema creates all tables and indexes for the dataset store.
// All schema creation succeeds or fails together.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if _, err := tx.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	statements := []struct {
		name string
		ddl  string
	}{
		{"runs", createRunsTable},
		{"samples", createSamplesTable},
		{"idx_samples_hash", createSampleHashIndex},
		{"idx_samples_repo", createSampleRepoIndex},
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}
