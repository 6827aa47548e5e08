// =============================================================================
// Inventory Validator - Row Error Types
// =============================================================================
//
// Errors raised while turning one candidate row into a product record. They
// are row-local: the reconciler logs them with the source line number, drops
// the row from the aggregates and keeps going. They never end the run.
//
// ERROR HANDLING:
//   - Each error names the line, the field and the offending raw value
//   - The underlying cause is kept and reachable with errors.Is / errors.As
//   - Fatal problems (missing input file) use loader.ResourceError instead
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrValueOutOfRange reports a number that does not fit the int64 range,
	// either as extracted from a field or as the product of two fields.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrRecordPanic reports an unexpected failure recovered while building
	// a record.
	ErrRecordPanic = errors.New("unexpected failure")
)

// =============================================================================
// RECORD ERROR
// =============================================================================

// RecordError is a failure deriving one product record.
type RecordError struct {
	// Line is the 1-based line number in the source file.
	Line int

	// Field names the value being derived, e.g. "sale_price" or "capital".
	Field string

	// Value is the raw field text, when there is one.
	Value string

	// Err is the cause.
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("line %d, field '%s': %v (value: '%s')", e.Line, e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("line %d, field '%s': %v", e.Line, e.Field, e.Err)
}

// Unwrap returns the cause.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a RecordError.
func NewRecordError(line int, field, value string, err error) *RecordError {
	return &RecordError{Line: line, Field: field, Value: value, Err: err}
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats row errors for display or logging.
//
// PARAMETERS:
//   - errs: The row errors to format.
//
// RETURNS:
//   - A formatted string containing all errors.
func FormatErrors(errs []*RecordError) string {
	if len(errs) == 0 {
		return "No rows skipped."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%d row(s) skipped:\n", len(errs)))

	for i, err := range errs {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
