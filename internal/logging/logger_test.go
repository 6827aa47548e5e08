package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected string
	}{
		{name: "default", config: Config{}, expected: "info"},
		{name: "info stays info", config: Config{Level: "info"}, expected: "info"},
		{name: "verbose sets debug", config: Config{Verbose: true}, expected: "debug"},
		{name: "verbose overrides default info", config: Config{Level: "info", Verbose: true}, expected: "debug"},
		{name: "explicit level overrides verbose", config: Config{Level: "error", Verbose: true}, expected: "error"},
		{name: "trace supported", config: Config{Level: "trace"}, expected: "trace"},
		{name: "invalid falls back to info", config: Config{Level: "loud"}, expected: "info"},
		{name: "uppercase is invalid", config: Config{Level: "DEBUG"}, expected: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineLevel(tt.config))
		})
	}
}

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Int("line", 4).Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"line":4`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "console", NoColor: true}, &buf)

	logger.Info().Str("file", "inventario.txt").Msg("Reconciling inventory export")

	assert.Contains(t, buf.String(), "Reconciling inventory export")
	assert.Contains(t, buf.String(), "file=inventario.txt")
}

func TestColorDisabled(t *testing.T) {
	t.Run("buffer", func(t *testing.T) {
		assert.True(t, ColorDisabled(&bytes.Buffer{}))
	})

	t.Run("regular file", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
		require.NoError(t, err)
		defer f.Close()
		assert.True(t, ColorDisabled(f))
	})

	t.Run("NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.True(t, ColorDisabled(os.Stderr))
	})
}

func TestNewConsolePlainWhenColorDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "console", NoColor: ColorDisabled(&buf)}, &buf)

	logger.Warn().Int("line", 7).Msg("Error processing line, row skipped")

	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "line=7")
}
