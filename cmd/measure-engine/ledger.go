// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/measure-engine/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Review recorded normalization runs (runs, show, export)",
	Long: `Ledger reads the SQLite run ledger written by normalize when a ledger
path is configured (--ledger or ledger.path). Each run holds its totals and
the decision made for every data row.`,
}

// --- runs subcommand ---

var ledgerRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, most recent first",
	RunE:  runLedgerRuns,
}

func runLedgerRuns(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %6s  %8s  %7s  %s\n",
		"Run", "Started", "Rows", "Accepted", "Blanked", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %6d  %8d  %7d  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Rows, r.Accepted,
			r.RejectedInteger+r.RejectedNoMeasurement, r.Input)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var ledgerShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run's totals with outcome and unit histograms",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerShow,
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := store.Show(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(w, report)
	return nil
}

func printReport(w io.Writer, r *ledger.Report) {
	fmt.Fprintf(w, "Run:      %s\n", r.Run.ID)
	fmt.Fprintf(w, "Started:  %s\n", r.Run.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "Finished: %s\n", r.Run.FinishedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "Input:    %s\n", r.Run.Input)
	fmt.Fprintf(w, "Output:   %s\n", r.Run.Output)
	fmt.Fprintf(w, "Column:   %d\n", r.Run.Column)
	fmt.Fprintf(w, "Rows:     %d\n", r.Run.Rows)

	fmt.Fprintln(w, "\nOutcomes:")
	for _, c := range r.Outcomes {
		fmt.Fprintf(w, "  %-26s %6d\n", c.Name, c.Count)
	}
	fmt.Fprintln(w, "\nUnits:")
	if len(r.Units) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, c := range r.Units {
		fmt.Fprintf(w, "  %-26s %6d\n", c.Name, c.Count)
	}
}

// --- export subcommand ---

var ledgerExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Write a run and every recorded row as YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerExport,
}

func runLedgerExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	switch format {
	case "yaml", "":
		return store.ExportYAML(cmd.Context(), args[0], w)
	case "json":
		return store.ExportJSON(cmd.Context(), args[0], w)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// --- shared helpers ---

func openLedger() (*ledger.Store, error) {
	if cfg.Ledger.Path == "" {
		return nil, fmt.Errorf("no ledger configured: set --ledger or ledger.path")
	}
	return ledger.Open(cfg.Ledger)
}

func init() {
	ledgerRunsCmd.Flags().Int("limit", 0, "maximum runs to list (0 = ledger.max_results)")
	ledgerShowCmd.Flags().Bool("json", false, "output the report as JSON")
	ledgerExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	ledgerCmd.AddCommand(ledgerRunsCmd)
	ledgerCmd.AddCommand(ledgerShowCmd)
	ledgerCmd.AddCommand(ledgerExportCmd)

	rootCmd.AddCommand(ledgerCmd)
}
