package reconcile

import (
	"strings"
	"unicode"

	"github.com/ginjaninja78/inventory-validator/internal/config"
	"github.com/ginjaninja78/inventory-validator/internal/types"
)

// IsBlank reports whether a line holds nothing but whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// SplitRow splits a line into fields after dropping trailing whitespace.
// Trailing empty fields go with it, so they do not count toward the field
// threshold.
func SplitRow(line, delimiter string) []string {
	return strings.Split(strings.TrimRightFunc(line, unicode.IsSpace), delimiter)
}

// NewCandidate splits a data line and keeps it only when it has at least
// settings.MinFields fields.
func NewCandidate(line string, number int, settings config.InputSettings) (types.Candidate, bool) {
	fields := SplitRow(line, settings.Delimiter)
	if len(fields) < settings.MinFields {
		return types.Candidate{}, false
	}
	return types.Candidate{Fields: fields, Line: number}, true
}

// Classify returns the trimmed product name of a candidate and whether it is
// an active product. A candidate with an empty name is never active.
func Classify(c types.Candidate, cols config.Columns) (name string, active bool) {
	name = strings.TrimSpace(c.Field(cols.Name))
	if name == "" {
		return "", false
	}
	return name, IsActiveFlag(strings.TrimSpace(c.Field(cols.Active)))
}

// IsActiveFlag reports whether a trimmed status flag marks an in-service
// product. The flag is normally "S"/"Si", but exports with a damaged encoding
// can push the letter one position to the right ("xS"), so an S anywhere in
// the first two characters also counts.
func IsActiveFlag(flag string) bool {
	if strings.HasPrefix(flag, "S") {
		return true
	}
	return strings.ContainsRune(firstRunes(flag, 2), 'S')
}

// firstRunes returns at most n leading characters of s.
func firstRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
