package dataset

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists dataset samples in SQLite, deduplicated by sample hash.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a dataset store at path. Use ":memory:" for
// an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset db %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// BeginRun records the start of a crawl run.
func (s *Store) BeginRun(runID, language string) error {
	_, err := sq.Insert("runs").
		Columns("run_id", "language", "started_at").
		Values(runID, language, time.Now().UTC().Format(time.RFC3339)).
		RunWith(s.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", runID, err)
	}
	return nil
}

// CompleteRun marks a run finished with its final sample count.
func (s *Store) CompleteRun(runID string, totalSamples int) error {
	_, err := sq.Update("runs").
		Set("completed_at", time.Now().UTC().Format(time.RFC3339)).
		Set("total_samples", totalSamples).
		Where(sq.Eq{"run_id": runID}).
		RunWith(s.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to complete run %s: %w", runID, err)
	}
	return nil
}

// InsertSamples writes a batch of samples in one transaction and returns how
// many were actually inserted; duplicates (by Hash) are ignored.
func (s *Store) InsertSamples(runID string, samples []Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin insert transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, sample := range samples {
		tokens, err := json.Marshal(sample.CodeTokens)
		if err != nil {
			return 0, fmt.Errorf("failed to encode tokens for %s: %w", sample.MethodName, err)
		}

		result, err := sq.Insert("samples").
			Columns(
				"run_id", "sample_hash",
				"repo_name", "repo_url", "repo_license", "commit_sha", "file_path",
				"method_name", "start_line", "end_line", "signature", "original_code", "code_tokens",
			).
			Values(
				runID, sample.Hash(),
				sample.RepoName, sample.RepoURL, sample.License, sample.CommitSHA, sample.FilePath,
				sample.MethodName, sample.StartLine, sample.EndLine, sample.Signature, sample.OriginalCode, string(tokens),
			).
			Options("OR IGNORE").
			RunWith(tx).
			Exec()
		if err != nil {
			return 0, fmt.Errorf("failed to insert sample %s: %w", sample.MethodName, err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit samples: %w", err)
	}
	return inserted, nil
}

// Count returns the number of stored samples.
func (s *Store) Count() (int, error) {
	var count int
	err := sq.Select("COUNT(*)").From("samples").RunWith(s.db).QueryRow().Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count samples: %w", err)
	}
	return count, nil
}

// Samples returns all stored samples in insertion order.
func (s *Store) Samples() ([]Sample, error) {
	rows, err := sq.Select(
		"repo_name", "repo_url", "repo_license", "commit_sha", "file_path",
		"method_name", "start_line", "end_line", "signature", "original_code", "code_tokens",
	).
		From("samples").
		OrderBy("id").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var sample Sample
		var tokens string
		err := rows.Scan(
			&sample.RepoName, &sample.RepoURL, &sample.License, &sample.CommitSHA, &sample.FilePath,
			&sample.MethodName, &sample.StartLine, &sample.EndLine, &sample.Signature, &sample.OriginalCode, &tokens,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		if err := json.Unmarshal([]byte(tokens), &sample.CodeTokens); err != nil {
			return nil, fmt.Errorf("failed to decode tokens for %s: %w", sample.MethodName, err)
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}
