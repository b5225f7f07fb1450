// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit persists validation decisions to a SQLite database so
// every accept and reject stays reviewable after the batch returns. The
// store is an optional sink driven by the CLI; the validation core itself
// holds no persistent state.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/validation-engine/pkg/types"
)

// Store manages the audit SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the audit database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating audit schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			total_sources INTEGER NOT NULL,
			total_validated INTEGER NOT NULL,
			average_score REAL NOT NULL,
			threshold REAL NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS decisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id INTEGER NOT NULL REFERENCES batches(id),
			source_id TEXT NOT NULL,
			title TEXT,
			source_type TEXT,
			domain TEXT,
			score REAL NOT NULL,
			grade TEXT,
			confidence TEXT,
			relevant INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			reason TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_batch_id ON decisions(batch_id)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_accepted ON decisions(accepted)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordBatch inserts one batch report and all of its decisions in a
// single transaction and returns the new batch row ID.
func (s *Store) RecordBatch(ctx context.Context, report types.BatchReport, decisions []types.Decision) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO batches (query, total_sources, total_validated, average_score, threshold, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		report.Query, report.TotalSources, report.TotalValidated,
		report.AverageScore, report.Threshold, report.Timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting batch: %w", err)
	}
	batchID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading batch id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO decisions (batch_id, source_id, title, source_type, domain, score, grade, confidence, relevant, accepted, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing decision insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range decisions {
		rec := d.Record
		_, err := stmt.ExecContext(ctx,
			batchID, rec.ID, rec.Title, string(rec.SourceType), rec.Domain,
			rec.CredibilityScore, string(rec.Grade), string(rec.Relevance.Confidence),
			rec.Relevance.IsRelevant, d.Accepted, d.Reason)
		if err != nil {
			return 0, fmt.Errorf("inserting decision for %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing batch: %w", err)
	}
	return batchID, nil
}

// Summary aggregates the audit trail.
type Summary struct {
	Batches      int
	Decisions    int
	Accepted     int
	AverageScore float64
}

// AcceptRate returns the fraction of decisions that accepted, or 0 when
// the trail is empty.
func (s Summary) AcceptRate() float64 {
	if s.Decisions == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Decisions)
}

// ReadSummary computes totals across every recorded batch.
func (s *Store) ReadSummary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM batches`).Scan(&sum.Batches)
	if err != nil {
		return Summary{}, fmt.Errorf("counting batches: %w", err)
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(accepted), 0), COALESCE(AVG(score), 0) FROM decisions`).
		Scan(&sum.Decisions, &sum.Accepted, &sum.AverageScore)
	if err != nil {
		return Summary{}, fmt.Errorf("aggregating decisions: %w", err)
	}
	return sum, nil
}

// RejectionReasons returns the distinct rejection reasons and how often
// each occurred, most frequent first. Reasons carrying record-specific
// scores are grouped by their stable prefix.
func (s *Store) RejectionReasons(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT reason FROM decisions WHERE accepted = 0`)
	if err != nil {
		return nil, fmt.Errorf("querying rejections: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var reason string
		if err := rows.Scan(&reason); err != nil {
			return nil, fmt.Errorf("scanning rejection: %w", err)
		}
		counts[reasonKind(reason)]++
	}
	return counts, rows.Err()
}

// reasonKind buckets a full reason string into its stable category.
func reasonKind(reason string) string {
	switch {
	case strings.HasPrefix(reason, "relevance-unverified"):
		return "relevance-unverified"
	case strings.HasPrefix(reason, "not relevant"):
		return "not-relevant"
	case strings.Contains(reason, "confidence LOW"):
		return "low-confidence"
	case strings.Contains(reason, "below"):
		return "below-threshold"
	default:
		return "other"
	}
}
