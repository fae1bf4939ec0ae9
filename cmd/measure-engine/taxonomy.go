// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/measure-engine/internal/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Inspect the unit taxonomy (list, aliases, validate, export)",
	Long: `Taxonomy shows the unit catalogue used for extraction: categories and
their canonical units, the alias table in match order, and the category
default rules. The built-in taxonomy is used unless --taxonomy names a file.`,
}

// --- list subcommand ---

var taxonomyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and their canonical units",
	RunE: func(cmd *cobra.Command, args []string) error {
		tax, err := loadTaxonomy()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, c := range tax.Categories() {
			fmt.Fprintf(w, "%-30s  %s\n", c.Name, strings.Join(c.Units, ", "))
		}
		return nil
	},
}

// --- aliases subcommand ---

var taxonomyAliasesCmd = &cobra.Command{
	Use:   "aliases [unit]",
	Short: "List surface forms in match order, or the forms of one unit",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tax, err := loadTaxonomy()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		if len(args) == 1 {
			unit := args[0]
			if !tax.IsCanonical(unit) {
				return fmt.Errorf("unknown unit %q", unit)
			}
			for _, form := range tax.AliasesFor(unit) {
				fmt.Fprintln(w, form)
			}
			return nil
		}

		fmt.Fprintf(w, "%-16s  %s\n", "Form", "Unit")
		fmt.Fprintln(w, strings.Repeat("-", 40))
		for _, a := range tax.Aliases() {
			fmt.Fprintf(w, "%-16s  %s\n", a.Form, a.Unit)
		}
		return nil
	},
}

// --- validate subcommand ---

var taxonomyValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a taxonomy file for duplicate or unknown entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			tax *taxonomy.Taxonomy
			err error
		)
		if len(args) == 1 {
			tax, err = taxonomy.LoadFile(args[0])
		} else {
			tax, err = loadTaxonomy()
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "taxonomy ok: %d categories, %d units, %d aliases, %d default rules\n",
			len(tax.Categories()), len(tax.CanonicalUnits()), len(tax.Aliases()), len(tax.DefaultRules()))
		return nil
	},
}

// --- export subcommand ---

var taxonomyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the taxonomy to standard output as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		tax, err := loadTaxonomy()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		switch format {
		case "yaml", "":
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(tax.File()); err != nil {
				return fmt.Errorf("marshaling YAML: %w", err)
			}
			return enc.Close()
		case "json":
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(tax.File())
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
	},
}

func init() {
	taxonomyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	taxonomyCmd.AddCommand(taxonomyListCmd)
	taxonomyCmd.AddCommand(taxonomyAliasesCmd)
	taxonomyCmd.AddCommand(taxonomyValidateCmd)
	taxonomyCmd.AddCommand(taxonomyExportCmd)

	rootCmd.AddCommand(taxonomyCmd)
}
