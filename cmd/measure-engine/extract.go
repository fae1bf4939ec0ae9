// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/measure-engine/internal/classify"
)

var extractCmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Classify free-text cells and print the normalized output",
	Long: `Extract runs the same accept/reject policy as normalize on each argument,
or on each line of standard input with --stdin, and prints the output cell
followed by a tab and the outcome. An empty output means the cell would be
blanked.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("stdin", false, "read one cell per line from standard input")
	extractCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(extractCmd)
}

type extractResult struct {
	Input string `json:"input"`
	classify.Result
}

func runExtract(cmd *cobra.Command, args []string) error {
	fromStdin, _ := cmd.Flags().GetBool("stdin")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	inputs := args
	if fromStdin {
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			inputs = append(inputs, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("reading standard input: %w", err)
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("provide text arguments or --stdin")
	}

	c, err := newClassifier()
	if err != nil {
		return err
	}

	results := make([]extractResult, len(inputs))
	for i, in := range inputs {
		results[i] = extractResult{Input: in, Result: c.Evaluate(in)}
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\n", r.Output, r.Outcome)
	}
	return nil
}
