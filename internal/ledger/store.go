// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records normalization runs in a SQLite database: one row
// per run with its outcome counts, and one row per classified data row with
// the raw cell, the output cell and the rule that produced it.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/measure-engine/internal/transform"
	"github.com/pdiddy/measure-engine/pkg/types"
)

// ErrRunNotFound is returned when a run ID is not in the ledger.
var ErrRunNotFound = errors.New("run not found")

const defaultMaxResults = 20

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the ledger database.
type Store struct {
	db         *sql.DB
	maxResults int
	now        func() time.Time
}

// Open opens or creates the ledger database at cfg.Path, creating its
// directory and schema if they do not exist.
func Open(cfg types.LedgerConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("ledger path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			input TEXT,
			output TEXT,
			text_column INTEGER,
			row_count INTEGER NOT NULL DEFAULT 0,
			accepted INTEGER NOT NULL DEFAULT 0,
			rejected_integer INTEGER NOT NULL DEFAULT 0,
			rejected_no_measurement INTEGER NOT NULL DEFAULT 0,
			passthrough INTEGER NOT NULL DEFAULT 0,
			short_rows INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS row_outcomes (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			line INTEGER NOT NULL,
			raw TEXT,
			output TEXT,
			outcome TEXT NOT NULL,
			value TEXT,
			unit TEXT,
			PRIMARY KEY (run_id, line)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_row_outcomes_outcome ON row_outcomes(run_id, outcome)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunMeta describes a run when it starts.
type RunMeta struct {
	Input  string
	Output string
	Column int
}

// Run is an open ledger transaction for one normalization run. It
// implements transform.Recorder. A Run is not safe for concurrent use.
type Run struct {
	id   string
	tx   *sql.Tx
	stmt *sql.Stmt
	now  func() time.Time
}

// Begin starts a run with a fresh UUID. Rows recorded on the run become
// visible only after Finish; Abort discards them.
func (s *Store) Begin(ctx context.Context, meta RunMeta) (*Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, input, output, text_column) VALUES (?, ?, ?, ?, ?)`,
		id, s.now().UTC().Format(timeLayout), meta.Input, meta.Output, meta.Column,
	)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO row_outcomes (run_id, line, raw, output, outcome, value, unit)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("preparing insert: %w", err)
	}

	return &Run{id: id, tx: tx, stmt: stmt, now: s.now}, nil
}

// ID returns the run's UUID.
func (r *Run) ID() string {
	return r.id
}

// Record stores one row decision.
func (r *Run) Record(ctx context.Context, row transform.RowResult) error {
	var value, unit string
	if m := row.Result.Measurement; m != nil {
		value, unit = m.Value, m.Unit
	}
	_, err := r.stmt.ExecContext(ctx,
		r.id, row.Record.Line, row.Raw, row.Result.Output, string(row.Result.Outcome), value, unit,
	)
	if err != nil {
		return fmt.Errorf("inserting row %d: %w", row.Record.Line, err)
	}
	return nil
}

// Finish stores the run's totals and commits it.
func (r *Run) Finish(ctx context.Context, summary transform.Summary) error {
	defer r.stmt.Close()
	_, err := r.tx.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, row_count = ?, accepted = ?, rejected_integer = ?,
			rejected_no_measurement = ?, passthrough = ?, short_rows = ?
		 WHERE id = ?`,
		r.now().UTC().Format(timeLayout), summary.Rows, summary.Accepted, summary.RejectedInteger,
		summary.RejectedNoMeasurement, summary.Passthrough, summary.ShortRows, r.id,
	)
	if err != nil {
		r.tx.Rollback()
		return fmt.Errorf("updating run: %w", err)
	}
	if err := r.tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// Abort discards the run and every row recorded on it.
func (r *Run) Abort() error {
	r.stmt.Close()
	if err := r.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
