// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform streams a table through the classifier, rewriting the
// description column of every data row and passing everything else
// through. Only one row is held in memory at a time.
package transform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/pdiddy/measure-engine/internal/classify"
	"github.com/pdiddy/measure-engine/pkg/types"
)

// DefaultColumn is the index of the description column.
const DefaultColumn = 1

// RowReader yields rows until it returns io.EOF.
type RowReader interface {
	Read() ([]string, error)
}

// RowWriter accepts rows; Close flushes buffered output.
type RowWriter interface {
	Write(row []string) error
	Close() error
}

// Classifier decides the output for one description cell.
type Classifier interface {
	Evaluate(raw string) classify.Result
}

// RowResult describes what happened to one data row.
type RowResult struct {
	Record types.Record
	Raw    string
	Result classify.Result
}

// Recorder receives every data row's result, e.g. to persist it.
type Recorder interface {
	Record(ctx context.Context, r RowResult) error
}

// Options configures Transform.
type Options struct {
	// Column is the zero-based description column. Values below 1 select
	// DefaultColumn; column 0 always holds the record key.
	Column int

	// Logger receives per-row debug entries. Nil disables logging.
	Logger *zap.Logger

	// Recorder, if set, is called for every data row.
	Recorder Recorder
}

// Summary holds counts from one transform run.
type Summary struct {
	Rows                  int
	Accepted              int
	RejectedInteger       int
	RejectedNoMeasurement int
	Passthrough           int
	ShortRows             int
}

// Total returns the number of data rows classified or passed through.
func (s Summary) Total() int {
	return s.Accepted + s.RejectedInteger + s.RejectedNoMeasurement + s.Passthrough + s.ShortRows
}

// Blanked returns the number of rows whose description was emptied.
func (s Summary) Blanked() int {
	return s.RejectedInteger + s.RejectedNoMeasurement
}

func (s *Summary) add(o types.Outcome) {
	s.Rows++
	switch o {
	case types.OutcomeAccepted:
		s.Accepted++
	case types.OutcomeRejectedInteger:
		s.RejectedInteger++
	case types.OutcomeRejectedNoMeasurement:
		s.RejectedNoMeasurement++
	case types.OutcomePassthrough:
		s.Passthrough++
	case types.OutcomeShortRow:
		s.ShortRows++
	}
}

// Transform copies the header from r to w unchanged, then for each data row
// replaces the description column with the classifier's output. Rows too
// short to have a description column are written unchanged. Row order and
// every other field are preserved. An empty input produces empty output.
//
// Transform does not close w.
func Transform(ctx context.Context, r RowReader, w RowWriter, c Classifier, opts Options) (Summary, error) {
	column := opts.Column
	if column <= 0 {
		column = DefaultColumn
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var summary Summary

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return summary, nil
	}
	if err != nil {
		return summary, fmt.Errorf("reading header: %w", err)
	}
	if err := w.Write(header); err != nil {
		return summary, fmt.Errorf("writing header: %w", err)
	}

	for line := 1; ; line++ {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("reading row %d: %w", line, err)
		}

		rr := RowResult{Record: types.Record{Line: line, Fields: row}}
		out := row
		if len(row) > column {
			rr.Raw = row[column]
			rr.Result = c.Evaluate(rr.Raw)
			out = slices.Clone(row)
			out[column] = rr.Result.Output
		} else {
			rr.Result = classify.Result{Outcome: types.OutcomeShortRow}
		}
		summary.add(rr.Result.Outcome)

		logger.Debug("classified row",
			zap.Int("line", line),
			zap.String("outcome", string(rr.Result.Outcome)),
			zap.String("output", rr.Result.Output),
		)

		if err := w.Write(out); err != nil {
			return summary, fmt.Errorf("writing row %d: %w", line, err)
		}

		if opts.Recorder != nil {
			if err := opts.Recorder.Record(ctx, rr); err != nil {
				return summary, fmt.Errorf("recording row %d: %w", line, err)
			}
		}
	}

	return summary, nil
}
