// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/measure-engine/internal/transform"
	"github.com/pdiddy/measure-engine/pkg/types"
)

const envPrefix = "MEASURE_ENGINE"

// setDefaults registers every config key so environment variables and
// Unmarshal see it even when no config file sets it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("taxonomy.file", "")
	v.SetDefault("extract.accept_canonical", false)

	v.SetDefault("normalize.column", transform.DefaultColumn)
	v.SetDefault("normalize.format", string(types.FormatAuto))
	v.SetDefault("normalize.sheet", "")

	v.SetDefault("ledger.path", "")
	v.SetDefault("ledger.max_results", 20)
}

// configureEnv maps keys such as ledger.path to MEASURE_ENGINE_LEDGER_PATH.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// bindFlags binds config keys to flag names in fs. A flag overrides the
// config file and environment only when set on the command line.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// loadConfig reads the config file, if any, and decodes every setting.
// A missing config file is not an error unless one was named explicitly.
func loadConfig(v *viper.Viper) (types.Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := validateConfig(c); err != nil {
		return types.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func validateConfig(c types.Config) error {
	if c.Normalize.Column < 1 {
		return fmt.Errorf("normalize.column must be at least 1 (column 0 holds the row key), got %d", c.Normalize.Column)
	}
	switch c.Normalize.Format {
	case types.FormatAuto, types.FormatCSV, types.FormatXLSX:
	default:
		return fmt.Errorf("normalize.format must be auto, csv or xlsx, got %q", c.Normalize.Format)
	}
	if c.Ledger.MaxResults < 0 {
		return fmt.Errorf("ledger.max_results must not be negative, got %d", c.Ledger.MaxResults)
	}
	return nil
}
