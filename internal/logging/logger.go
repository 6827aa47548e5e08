// Package logging builds the zerolog logger used for diagnostics. Logs go to
// stderr so they never mix with the report on stdout.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is "console" for human-readable output or "json"
	Format string

	// Verbose is a shortcut for the debug level
	Verbose bool

	// NoColor disables color output in console mode
	NoColor bool
}

// New creates a logger writing to out.
func New(cfg Config, out io.Writer) zerolog.Logger {
	level := parseLevel(DetermineLevel(cfg))

	var writer io.Writer = out
	if !strings.EqualFold(cfg.Format, "json") {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ColorDisabled reports whether console output to out should be plain: when
// NO_COLOR is set or out is not a terminal.
func ColorDisabled(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	f, ok := out.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// DetermineLevel resolves the effective level. An explicit level wins over
// the verbose shortcut; an invalid level falls back to info.
func DetermineLevel(cfg Config) string {
	if cfg.Level != "" && cfg.Level != "info" {
		return validateLevel(cfg.Level)
	}
	if cfg.Verbose {
		return "debug"
	}
	return validateLevel(cfg.Level)
}

func validateLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	default:
		return "info"
	}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
