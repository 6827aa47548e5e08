// =============================================================================
// Inventory Validator - Configuration Module
// =============================================================================
//
// This module holds everything the validator needs to know that is not read
// from the inventory export itself:
//   1. The baseline figures shown by the dashboard (capital, sale value,
//      profit, margin). These are compiled in and can be overridden.
//   2. Input settings (encoding, delimiter, header rows, field threshold).
//   3. Column positions of the fields the validator reads.
//   4. Logging settings.
//
// A run without a config file uses the compiled defaults exactly. A YAML file
// passed with --config only replaces the keys it sets.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// COMPILED BASELINE
// =============================================================================

// Dashboard figures the export is reconciled against.
const (
	DefaultKnownCapital   int64 = 34972811
	DefaultKnownSaleValue int64 = 47072180
	DefaultKnownProfit    int64 = 12099369
	DefaultKnownMargin          = "34.60"
)

// Supported input encodings. All of them accept any byte value except utf-8,
// which passes bytes through unchanged.
const (
	EncodingLatin1      = "latin-1"
	EncodingWindows1252 = "windows-1252"
	EncodingUTF8        = "utf-8"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config is the full validator configuration.
type Config struct {
	// Baseline holds the previously known aggregate figures.
	Baseline Baseline

	// Input controls how the export is read and which rows are considered.
	Input InputSettings

	// Columns holds the 0-based position of every field the validator reads.
	Columns Columns

	// LogLevel controls the verbosity of logging.
	// Valid values: "trace", "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string

	// LogFormat is "console" or "json".
	// Default: "console"
	LogFormat string
}

// Baseline is the externally known tuple of figures. It is never derived
// from the input file.
type Baseline struct {
	KnownCapital   int64
	KnownSaleValue int64
	KnownProfit    int64

	// KnownMargin is a percentage, e.g. 34.60.
	KnownMargin decimal.Decimal
}

// InputSettings contains settings for reading the inventory export.
type InputSettings struct {
	// Encoding is the declared text encoding of the export.
	// Default: "latin-1"
	Encoding string

	// Delimiter separates fields within a line.
	// Default: "\t"
	Delimiter string

	// HeaderRows is the number of leading lines that are skipped.
	// Default: 1
	HeaderRows int

	// MinFields is the minimum number of fields a row needs to be a candidate.
	// Default: 19
	MinFields int

	// NameMaxLength is the display length product names are truncated to.
	// Default: 30
	NameMaxLength int

	// Sheet selects the worksheet for .xlsx inputs. Empty means the first one.
	Sheet string
}

// Columns maps each field the validator reads to its 0-based index.
type Columns struct {
	Name          int
	SalePrice     int
	PurchasePrice int
	StockBoxes    int
	UnitsPerBox   int
	LooseUnits    int
	Active        int
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the compiled configuration.
func Default() *Config {
	return &Config{
		Baseline: Baseline{
			KnownCapital:   DefaultKnownCapital,
			KnownSaleValue: DefaultKnownSaleValue,
			KnownProfit:    DefaultKnownProfit,
			KnownMargin:    decimal.RequireFromString(DefaultKnownMargin),
		},
		Input: InputSettings{
			Encoding:      EncodingLatin1,
			Delimiter:     "\t",
			HeaderRows:    1,
			MinFields:     19,
			NameMaxLength: 30,
		},
		Columns: Columns{
			Name:          0,
			SalePrice:     6,
			PurchasePrice: 8,
			StockBoxes:    10,
			UnitsPerBox:   11,
			LooseUnits:    12,
			Active:        18,
		},
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// =============================================================================
// FILE FORMAT
// =============================================================================
// Every key is a pointer so that an absent key keeps its compiled default and
// an explicit zero (a legitimate baseline value) is still honoured.

type fileConfig struct {
	Baseline struct {
		Capital   *int64   `yaml:"capital"`
		SaleValue *int64   `yaml:"sale_value"`
		Profit    *int64   `yaml:"profit"`
		Margin    *float64 `yaml:"margin"`
	} `yaml:"baseline"`

	Input struct {
		Encoding      *string `yaml:"encoding"`
		Delimiter     *string `yaml:"delimiter"`
		HeaderRows    *int    `yaml:"header_rows"`
		MinFields     *int    `yaml:"min_fields"`
		NameMaxLength *int    `yaml:"name_max_length"`
		Sheet         *string `yaml:"sheet"`
	} `yaml:"input"`

	Columns struct {
		Name          *int `yaml:"name"`
		SalePrice     *int `yaml:"sale_price"`
		PurchasePrice *int `yaml:"purchase_price"`
		StockBoxes    *int `yaml:"stock_boxes"`
		UnitsPerBox   *int `yaml:"units_per_box"`
		LooseUnits    *int `yaml:"loose_units"`
		Active        *int `yaml:"active"`
	} `yaml:"columns"`

	LogLevel  *string `yaml:"log_level"`
	LogFormat *string `yaml:"log_format"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads a YAML configuration file and layers it over the compiled
// defaults. An empty path returns the defaults.
//
// PARAMETERS:
//   - configPath: The path to the configuration file, or "".
//
// RETURNS:
//   - A pointer to the validated Config.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyFile(cfg, &file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyFile copies every key present in the file onto cfg.
func applyFile(cfg *Config, file *fileConfig) {
	setInt64(&cfg.Baseline.KnownCapital, file.Baseline.Capital)
	setInt64(&cfg.Baseline.KnownSaleValue, file.Baseline.SaleValue)
	setInt64(&cfg.Baseline.KnownProfit, file.Baseline.Profit)
	if file.Baseline.Margin != nil {
		cfg.Baseline.KnownMargin = decimal.NewFromFloat(*file.Baseline.Margin)
	}

	setString(&cfg.Input.Encoding, file.Input.Encoding)
	setString(&cfg.Input.Delimiter, file.Input.Delimiter)
	setInt(&cfg.Input.HeaderRows, file.Input.HeaderRows)
	setInt(&cfg.Input.MinFields, file.Input.MinFields)
	setInt(&cfg.Input.NameMaxLength, file.Input.NameMaxLength)
	setString(&cfg.Input.Sheet, file.Input.Sheet)

	setInt(&cfg.Columns.Name, file.Columns.Name)
	setInt(&cfg.Columns.SalePrice, file.Columns.SalePrice)
	setInt(&cfg.Columns.PurchasePrice, file.Columns.PurchasePrice)
	setInt(&cfg.Columns.StockBoxes, file.Columns.StockBoxes)
	setInt(&cfg.Columns.UnitsPerBox, file.Columns.UnitsPerBox)
	setInt(&cfg.Columns.LooseUnits, file.Columns.LooseUnits)
	setInt(&cfg.Columns.Active, file.Columns.Active)

	setString(&cfg.LogLevel, file.LogLevel)
	setString(&cfg.LogFormat, file.LogFormat)
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setInt64(dst *int64, src *int64) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration and normalizes the encoding and
// delimiter names in place.
func (c *Config) Validate() error {
	encoding, err := NormalizeEncoding(c.Input.Encoding)
	if err != nil {
		return err
	}
	c.Input.Encoding = encoding
	c.Input.Delimiter = normalizeDelimiter(c.Input.Delimiter)

	if c.Input.HeaderRows < 0 {
		return fmt.Errorf("header_rows must not be negative, got %d", c.Input.HeaderRows)
	}
	if c.Input.MinFields < 1 {
		return fmt.Errorf("min_fields must be at least 1, got %d", c.Input.MinFields)
	}
	if c.Input.NameMaxLength < 1 {
		return fmt.Errorf("name_max_length must be at least 1, got %d", c.Input.NameMaxLength)
	}

	columns := []struct {
		name  string
		index int
	}{
		{"name", c.Columns.Name},
		{"sale_price", c.Columns.SalePrice},
		{"purchase_price", c.Columns.PurchasePrice},
		{"stock_boxes", c.Columns.StockBoxes},
		{"units_per_box", c.Columns.UnitsPerBox},
		{"loose_units", c.Columns.LooseUnits},
		{"active", c.Columns.Active},
	}
	for _, col := range columns {
		if col.index < 0 {
			return fmt.Errorf("column %s must not be negative, got %d", col.name, col.index)
		}
	}
	if c.Columns.Name >= c.Input.MinFields {
		return fmt.Errorf("column name (%d) must be below min_fields (%d)", c.Columns.Name, c.Input.MinFields)
	}

	return nil
}

// NormalizeEncoding maps the accepted spellings of an encoding name to one of
// the Encoding* constants.
func NormalizeEncoding(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
}

// normalizeDelimiter accepts the same spellings the CSV settings always did.
func normalizeDelimiter(delimiter string) string {
	switch delimiter {
	case "", "\\t", "tab", "TAB":
		return "\t"
	case "pipe", "PIPE":
		return "|"
	case "semicolon":
		return ";"
	default:
		return delimiter
	}
}
