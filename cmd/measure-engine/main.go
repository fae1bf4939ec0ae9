// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the measure-engine CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/measure-engine/internal/logging"
	"github.com/pdiddy/measure-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is loaded before every command runs.
	cfg types.Config

	logger = zap.NewNop()
)

// rootCmd is the base command for the measure-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "measure-engine",
	Short: "Normalize free-text product measurements to canonical units",
	Long: `measure-engine reads free-text descriptions of product attributes, finds a
numeric value and a unit in each one, and rewrites it as "<value> <canonical
unit>" drawn from a fixed unit taxonomy. Cells with no reliable measurement
are blanked.

Use normalize for whole tables, extract for ad hoc text, taxonomy to inspect
the unit catalogue, and ledger to review recorded runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./measure-engine.yaml or ~/.config/measure-engine/measure-engine.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("taxonomy", "", "taxonomy YAML file (default: built-in taxonomy)")
	pf.Bool("accept-canonical", false, `also recognize canonical unit spellings such as "litre"`)
	pf.String("ledger", "", "SQLite run ledger path (default: no ledger)")

	v := viper.GetViper()
	setDefaults(v)
	bindFlags(v, pf, map[string]string{
		"log.level":                "log-level",
		"log.format":               "log-format",
		"taxonomy.file":            "taxonomy",
		"extract.accept_canonical": "accept-canonical",
		"ledger.path":              "ledger",
	})
}

func initConfig() {
	// A .env file beside the data may hold MEASURE_ENGINE_* overrides.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("measure-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "measure-engine"))
		}
	}

	configureEnv(viper.GetViper())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
