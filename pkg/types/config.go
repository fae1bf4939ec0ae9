package types

// LogConfig holds logger settings shared by every command.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects the encoder: console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// TaxonomyConfig selects the unit taxonomy.
type TaxonomyConfig struct {
	// File is a YAML taxonomy file. Empty uses the built-in taxonomy.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// ExtractConfig holds settings for the value-unit extractor.
type ExtractConfig struct {
	// AcceptCanonical makes canonical unit spellings (e.g. "litre")
	// recognizable in text even when they are not alias keys. Off by default:
	// turning it on changes which cells are accepted.
	AcceptCanonical bool `json:"accept_canonical" yaml:"accept_canonical" mapstructure:"accept_canonical"`
}

// TableFormat identifies the on-disk format of an input or output table.
type TableFormat string

const (
	FormatAuto TableFormat = "auto"
	FormatCSV  TableFormat = "csv"
	FormatXLSX TableFormat = "xlsx"
)

// NormalizeConfig holds settings for the row transformer.
type NormalizeConfig struct {
	// Column is the zero-based index of the text column to rewrite (default 1).
	Column int `json:"column" yaml:"column" mapstructure:"column"`

	// Format is the table format: auto, csv, or xlsx. Auto picks by extension.
	Format TableFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Sheet names the worksheet to read from an xlsx input. Empty reads the first.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty" mapstructure:"sheet"`
}

// LedgerConfig holds settings for the optional run ledger.
type LedgerConfig struct {
	// Path is the SQLite database file. Empty disables the ledger.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`

	// MaxResults is the default number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
	Taxonomy  TaxonomyConfig  `json:"taxonomy" yaml:"taxonomy" mapstructure:"taxonomy"`
	Extract   ExtractConfig   `json:"extract" yaml:"extract" mapstructure:"extract"`
	Normalize NormalizeConfig `json:"normalize" yaml:"normalize" mapstructure:"normalize"`
	Ledger    LedgerConfig    `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
}
