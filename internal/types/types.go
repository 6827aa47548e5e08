// =============================================================================
// Inventory Validator - Shared Types
// =============================================================================
//
// This package contains the data model shared by the reconcile and report
// packages. Everything here is built once per run and never mutated after
// construction.
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ROW TYPES
// =============================================================================

// Candidate is a data row that met the minimum field count.
type Candidate struct {
	// Fields contains the raw fields of the line, split on the delimiter.
	Fields []string

	// Line is the 1-based line number in the source file.
	Line int
}

// Field returns the field at index, or "" when the row is shorter.
func (c Candidate) Field(index int) string {
	if index < 0 || index >= len(c.Fields) {
		return ""
	}
	return c.Fields[index]
}

// ProductRecord is an active, named inventory row with stock on hand.
type ProductRecord struct {
	// Name is the product name, truncated to the display length.
	Name string

	// StockTotal is boxes * units per box + loose units.
	StockTotal int64

	// PurchasePrice and SalePrice are in minor currency units.
	PurchasePrice int64
	SalePrice     int64

	// Capital is PurchasePrice * StockTotal.
	Capital int64

	// SaleValue is SalePrice * StockTotal.
	SaleValue int64

	// Line is the 1-based source line the record came from.
	Line int
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// Difference is a computed value minus its baseline.
type Difference struct {
	// Delta is computed - baseline.
	Delta decimal.Decimal

	// Percent is Delta relative to the baseline, in percent.
	// It is zero when the baseline is zero.
	Percent decimal.Decimal
}

// ReconciliationResult holds the aggregates of one run and their
// differences from the baseline.
type ReconciliationResult struct {
	// RunID identifies the run in log output.
	RunID string

	// Lines is the number of data lines read (header excluded).
	Lines int

	// ActiveCount is the number of rows classified active, including rows
	// that later turned out to have no stock or failed to parse.
	ActiveCount int

	TotalCapital   int64
	TotalSaleValue int64

	// Profit is TotalSaleValue - TotalCapital. It may be negative.
	Profit int64

	// MarginPercent is Profit / TotalSaleValue * 100, or zero when there is
	// no sale value.
	MarginPercent decimal.Decimal

	// Products lists the records that contributed to the totals, in file order.
	Products []ProductRecord

	// Skipped counts the rows excluded by a row-local error.
	Skipped int

	CapitalDiff   Difference
	SaleValueDiff Difference
	ProfitDiff    Difference
	MarginDiff    Difference
}
