// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/measure-engine/internal/classify"
	"github.com/pdiddy/measure-engine/internal/extract"
	"github.com/pdiddy/measure-engine/internal/ledger"
	"github.com/pdiddy/measure-engine/internal/taxonomy"
	"github.com/pdiddy/measure-engine/internal/transform"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <input> [output]",
	Short: "Rewrite the description column of a table with normalized measurements",
	Long: `Normalize reads a CSV or XLSX table, keeps the header, and replaces the
description column of every data row with "<value> <canonical unit>" or with
an empty cell when no reliable measurement is found. Every other column and
the row order are preserved.

Use - for standard input or output; output defaults to standard output.
The output file is replaced only when the whole table was written. With a
ledger configured, every row decision is recorded under a new run ID.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runNormalize,
}

func init() {
	f := normalizeCmd.Flags()
	f.Int("column", transform.DefaultColumn, "zero-based index of the description column")
	f.String("format", "auto", "table format: auto, csv, or xlsx")
	f.String("sheet", "", "worksheet to read from an xlsx input (default: first sheet)")

	bindFlags(viper.GetViper(), f, map[string]string{
		"normalize.column": "column",
		"normalize.format": "format",
		"normalize.sheet":  "sheet",
	})

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	inPath := args[0]
	outPath := transform.StdioPath
	if len(args) > 1 {
		outPath = args[1]
	}

	c, err := newClassifier()
	if err != nil {
		return err
	}

	opts := transform.FileOptions{
		Options: transform.Options{
			Column: cfg.Normalize.Column,
			Logger: logger,
		},
		Format: cfg.Normalize.Format,
		Sheet:  cfg.Normalize.Sheet,
	}

	ctx := cmd.Context()
	var run *ledger.Run
	if cfg.Ledger.Path != "" {
		store, err := ledger.Open(cfg.Ledger)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err = store.Begin(ctx, ledger.RunMeta{Input: inPath, Output: outPath, Column: cfg.Normalize.Column})
		if err != nil {
			return err
		}
		opts.Recorder = run
	}

	logger.Info("normalize started",
		zap.String("input", inPath),
		zap.String("output", outPath),
		zap.Int("column", cfg.Normalize.Column),
	)

	summary, err := transform.TransformFile(ctx, inPath, outPath, c, opts)
	if err != nil {
		if run != nil {
			abortRun(logger, run)
		}
		return err
	}

	var runID string
	if run != nil {
		if err := run.Finish(ctx, summary); err != nil {
			return err
		}
		runID = run.ID()
	}

	logger.Info("normalize finished",
		zap.Int("rows", summary.Rows),
		zap.Int("accepted", summary.Accepted),
		zap.Int("blanked", summary.Blanked()),
		zap.String("run_id", runID),
	)

	// Keep the summary out of a table written to standard output.
	w := cmd.OutOrStdout()
	if outPath == transform.StdioPath {
		w = cmd.ErrOrStderr()
	}
	printSummary(w, summary, runID)
	return nil
}

type abortableRun interface {
	ID() string
	Abort() error
}

// abortRun discards a failed run. The transform error is the one reported,
// so a rollback failure is only logged.
func abortRun(log *zap.Logger, run abortableRun) {
	if err := run.Abort(); err != nil {
		log.Warn("discarding ledger run failed",
			zap.String("run_id", run.ID()),
			zap.Error(err),
		)
	}
}

func printSummary(w io.Writer, s transform.Summary, runID string) {
	fmt.Fprintf(w, "rows: %d, accepted: %d, integer: %d, no measurement: %d, passthrough: %d, short: %d\n",
		s.Rows, s.Accepted, s.RejectedInteger, s.RejectedNoMeasurement, s.Passthrough, s.ShortRows)
	if runID != "" {
		fmt.Fprintf(w, "run: %s\n", runID)
	}
}

// --- shared helpers ---

func loadTaxonomy() (*taxonomy.Taxonomy, error) {
	if cfg.Taxonomy.File == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.LoadFile(cfg.Taxonomy.File)
}

func newClassifier() (*classify.Classifier, error) {
	tax, err := loadTaxonomy()
	if err != nil {
		return nil, err
	}
	var opts []extract.Option
	if cfg.Extract.AcceptCanonical {
		opts = append(opts, extract.WithCanonicalForms())
	}
	return classify.New(extract.New(tax, opts...)), nil
}
