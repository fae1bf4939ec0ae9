// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var defaultUnitCmd = &cobra.Command{
	Use:   "default-unit <text...>",
	Short: "Print the fallback unit the category rules assign to text",
	Long: `Default-unit checks the taxonomy's ordered keyword rules against the text
(case-sensitive substring match) and prints the unit of the first rule that
applies. It exits non-zero when no rule applies.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tax, err := loadTaxonomy()
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")
		unit, ok := tax.DefaultUnitFor(text)
		if !ok {
			return fmt.Errorf("no default unit for %q", text)
		}
		fmt.Fprintln(cmd.OutOrStdout(), unit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(defaultUnitCmd)
}
