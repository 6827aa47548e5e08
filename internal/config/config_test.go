package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(34972811), cfg.Baseline.KnownCapital)
	assert.Equal(t, int64(47072180), cfg.Baseline.KnownSaleValue)
	assert.Equal(t, int64(12099369), cfg.Baseline.KnownProfit)
	assert.True(t, cfg.Baseline.KnownMargin.Equal(decimal.RequireFromString("34.6")))
	assert.Equal(t, EncodingLatin1, cfg.Input.Encoding)
	assert.Equal(t, "\t", cfg.Input.Delimiter)
	assert.Equal(t, 19, cfg.Input.MinFields)
	assert.Equal(t, 30, cfg.Input.NameMaxLength)
	assert.Equal(t, Columns{Name: 0, SalePrice: 6, PurchasePrice: 8, StockBoxes: 10, UnitsPerBox: 11, LooseUnits: 12, Active: 18}, cfg.Columns)
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	path := writeConfig(t, `
baseline:
  capital: 0
  margin: 12.5
input:
  encoding: cp1252
  delimiter: tab
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Baseline.KnownCapital, "explicit zero must be kept")
	assert.Equal(t, int64(47072180), cfg.Baseline.KnownSaleValue)
	assert.True(t, cfg.Baseline.KnownMargin.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, EncodingWindows1252, cfg.Input.Encoding)
	assert.Equal(t, "\t", cfg.Input.Delimiter)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed yaml", body: "baseline: [unclosed"},
		{name: "unknown encoding", body: "input:\n  encoding: ebcdic\n"},
		{name: "negative column", body: "columns:\n  sale_price: -1\n"},
		{name: "zero min fields", body: "input:\n  min_fields: 0\n"},
		{name: "name beyond threshold", body: "input:\n  min_fields: 3\ncolumns:\n  name: 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsFirstNegativeColumn(t *testing.T) {
	cfg := Default()
	cfg.Columns.Active = -1
	cfg.Columns.SalePrice = -2
	cfg.Columns.LooseUnits = -3

	for i := 0; i < 20; i++ {
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, "column sale_price must not be negative, got -2", err.Error())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizeEncoding(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "", expected: EncodingLatin1},
		{input: "Latin1", expected: EncodingLatin1},
		{input: "ISO-8859-1", expected: EncodingLatin1},
		{input: "windows-1252", expected: EncodingWindows1252},
		{input: "UTF8", expected: EncodingUTF8},
		{input: "shift-jis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeEncoding(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
