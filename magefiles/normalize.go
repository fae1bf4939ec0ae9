package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Normalize runs the built CLI over every table in data/raw/, writing
// results to data/normalized/ and recording each run in data/ledger/runs.db.
func Normalize() error {
	mg.Deps(Init, Build)

	entries, err := os.ReadDir("data/raw")
	if err != nil {
		return fmt.Errorf("reading data/raw: %w", err)
	}

	bin := filepath.Join(binDir, binName)
	var done int
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".csv" && ext != ".xlsx") {
			continue
		}
		in := filepath.Join("data/raw", entry.Name())
		out := filepath.Join("data/normalized", entry.Name())
		fmt.Printf("normalizing %s\n", in)
		if err := sh.RunV(bin, "normalize", in, out, "--ledger", "data/ledger/runs.db"); err != nil {
			return fmt.Errorf("normalizing %s: %w", in, err)
		}
		done++
	}
	fmt.Printf("\nnormalized: %d\n", done)
	return nil
}
