package reconcile

import (
	"math"
	"strconv"

	"github.com/ginjaninja78/inventory-validator/internal/validation"
)

// ExtractLeadingNumber returns the first run of decimal digits in text as an
// integer. Currency symbols, thousands separators and stray characters around
// or after the run are ignored, so "$1.234" yields 1, not 1234. Text without
// digits yields 0.
//
// The only error is a digit run too large for int64, reported as
// validation.ErrValueOutOfRange.
func ExtractLeadingNumber(text string) (int64, error) {
	start := -1
	for i := 0; i < len(text); i++ {
		if isDigit(text[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, nil
	}

	end := start
	for end < len(text) && isDigit(text[end]) {
		end++
	}

	n, err := strconv.ParseInt(text[start:end], 10, 64)
	if err != nil {
		return 0, validation.ErrValueOutOfRange
	}
	return n, nil
}

// FieldNumber applies ExtractLeadingNumber to fields[index]. A missing field
// yields 0.
func FieldNumber(fields []string, index int) (int64, error) {
	if index < 0 || index >= len(fields) {
		return 0, nil
	}
	return ExtractLeadingNumber(fields[index])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// mulChecked multiplies two non-negative values.
func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

// addChecked adds two non-negative values.
func addChecked(a, b int64) (int64, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
