// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/measure-engine/pkg/types"
)

// RunInfo is a committed run with its totals.
type RunInfo struct {
	ID                    string    `json:"id" yaml:"id"`
	StartedAt             time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt            time.Time `json:"finished_at" yaml:"finished_at"`
	Input                 string    `json:"input" yaml:"input"`
	Output                string    `json:"output" yaml:"output"`
	Column                int       `json:"column" yaml:"column"`
	Rows                  int       `json:"rows" yaml:"rows"`
	Accepted              int       `json:"accepted" yaml:"accepted"`
	RejectedInteger       int       `json:"rejected_integer" yaml:"rejected_integer"`
	RejectedNoMeasurement int       `json:"rejected_no_measurement" yaml:"rejected_no_measurement"`
	Passthrough           int       `json:"passthrough" yaml:"passthrough"`
	ShortRows             int       `json:"short_rows" yaml:"short_rows"`
}

// Count is one bucket of a histogram.
type Count struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Report is a run with its outcome and unit histograms. Buckets are
// ordered by count, largest first, then by name.
type Report struct {
	Run      RunInfo `json:"run" yaml:"run"`
	Outcomes []Count `json:"outcomes" yaml:"outcomes"`
	Units    []Count `json:"units" yaml:"units"`
}

// RowEntry is one recorded row decision.
type RowEntry struct {
	Line    int           `json:"line" yaml:"line"`
	Raw     string        `json:"raw" yaml:"raw"`
	Output  string        `json:"output" yaml:"output"`
	Outcome types.Outcome `json:"outcome" yaml:"outcome"`
	Value   string        `json:"value,omitempty" yaml:"value,omitempty"`
	Unit    string        `json:"unit,omitempty" yaml:"unit,omitempty"`
}

const runColumns = `id, started_at, finished_at, input, output, text_column, row_count,
	accepted, rejected_integer, rejected_no_measurement, passthrough, short_rows`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunInfo, error) {
	var (
		info          RunInfo
		started       string
		finished      sql.NullString
		input, output sql.NullString
		column        sql.NullInt64
	)
	if err := sc.Scan(
		&info.ID, &started, &finished, &input, &output, &column, &info.Rows,
		&info.Accepted, &info.RejectedInteger, &info.RejectedNoMeasurement,
		&info.Passthrough, &info.ShortRows,
	); err != nil {
		return RunInfo{}, err
	}

	t, err := time.Parse(timeLayout, started)
	if err != nil {
		return RunInfo{}, fmt.Errorf("parsing started_at: %w", err)
	}
	info.StartedAt = t
	if finished.Valid {
		if t, err := time.Parse(timeLayout, finished.String); err == nil {
			info.FinishedAt = t
		}
	}
	info.Input = input.String
	info.Output = output.String
	info.Column = int(column.Int64)
	return info, nil
}

// Runs lists committed runs, most recent first. A limit of zero or less
// uses the store default.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		info, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// Run returns a single run.
func (s *Store) Run(ctx context.Context, id string) (RunInfo, error) {
	info, err := scanRun(s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return RunInfo{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return RunInfo{}, fmt.Errorf("looking up run: %w", err)
	}
	return info, nil
}

// Show returns the run with its outcome and unit histograms.
func (s *Store) Show(ctx context.Context, id string) (*Report, error) {
	info, err := s.Run(ctx, id)
	if err != nil {
		return nil, err
	}

	outcomes, err := s.histogram(ctx,
		`SELECT outcome, count(*) FROM row_outcomes WHERE run_id = ?
		 GROUP BY outcome ORDER BY count(*) DESC, outcome`, id)
	if err != nil {
		return nil, fmt.Errorf("counting outcomes: %w", err)
	}
	units, err := s.histogram(ctx,
		`SELECT unit, count(*) FROM row_outcomes WHERE run_id = ? AND unit != ''
		 GROUP BY unit ORDER BY count(*) DESC, unit`, id)
	if err != nil {
		return nil, fmt.Errorf("counting units: %w", err)
	}

	return &Report{Run: info, Outcomes: outcomes, Units: units}, nil
}

func (s *Store) histogram(ctx context.Context, query, id string) ([]Count, error) {
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Rows returns every recorded row of a run in line order.
func (s *Store) Rows(ctx context.Context, id string) ([]RowEntry, error) {
	if _, err := s.Run(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT line, raw, output, outcome, value, unit FROM row_outcomes
		 WHERE run_id = ? ORDER BY line`, id)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()

	var entries []RowEntry
	for rows.Next() {
		var (
			e                        RowEntry
			outcome                  string
			raw, output, value, unit sql.NullString
		)
		if err := rows.Scan(&e.Line, &raw, &output, &outcome, &value, &unit); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.Raw, e.Output = raw.String, output.String
		e.Outcome = types.Outcome(outcome)
		e.Value, e.Unit = value.String, unit.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
