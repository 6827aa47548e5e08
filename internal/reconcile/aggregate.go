package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/inventory-validator/internal/config"
	"github.com/ginjaninja78/inventory-validator/internal/types"
	"github.com/ginjaninja78/inventory-validator/internal/validation"
)

var hundred = decimal.NewFromInt(100)

// Accumulator is the fold state of one reconciliation. The zero value is
// ready to use.
type Accumulator struct {
	activeCount    int
	totalCapital   int64
	totalSaleValue int64
	products       []types.ProductRecord
	skipped        []*validation.RecordError
}

// CountActive records one row classified active.
//
// The count is taken at classification time, so active rows without stock
// and rows that fail to parse are included. The dashboard figures it is
// compared with count them the same way.
// TODO(inventory): confirm with the product owner whether zero-stock active
// rows belong in the active count.
func (a *Accumulator) CountActive() {
	a.activeCount++
}

// Add folds a record into the totals. A record that would overflow either
// total is rejected with a RecordError and leaves the totals unchanged.
func (a *Accumulator) Add(rec types.ProductRecord) error {
	capital, ok := addChecked(a.totalCapital, rec.Capital)
	if !ok {
		return validation.NewRecordError(rec.Line, "total_capital", "", validation.ErrValueOutOfRange)
	}
	saleValue, ok := addChecked(a.totalSaleValue, rec.SaleValue)
	if !ok {
		return validation.NewRecordError(rec.Line, "total_sale_value", "", validation.ErrValueOutOfRange)
	}

	a.totalCapital = capital
	a.totalSaleValue = saleValue
	a.products = append(a.products, rec)
	return nil
}

// Skip records a row excluded by a row-local error.
func (a *Accumulator) Skip(err *validation.RecordError) {
	a.skipped = append(a.skipped, err)
}

// Skipped returns the row errors recorded so far.
func (a *Accumulator) Skipped() []*validation.RecordError {
	return a.skipped
}

// Result derives profit, margin and the differences against the baseline.
func (a *Accumulator) Result(baseline config.Baseline) types.ReconciliationResult {
	profit := a.totalSaleValue - a.totalCapital
	margin := Margin(profit, a.totalSaleValue)

	products := make([]types.ProductRecord, len(a.products))
	copy(products, a.products)

	return types.ReconciliationResult{
		ActiveCount:    a.activeCount,
		TotalCapital:   a.totalCapital,
		TotalSaleValue: a.totalSaleValue,
		Profit:         profit,
		MarginPercent:  margin,
		Products:       products,
		Skipped:        len(a.skipped),
		CapitalDiff:    Diff(decimal.NewFromInt(a.totalCapital), decimal.NewFromInt(baseline.KnownCapital)),
		SaleValueDiff:  Diff(decimal.NewFromInt(a.totalSaleValue), decimal.NewFromInt(baseline.KnownSaleValue)),
		ProfitDiff:     Diff(decimal.NewFromInt(profit), decimal.NewFromInt(baseline.KnownProfit)),
		MarginDiff:     Diff(margin, baseline.KnownMargin),
	}
}

// Margin returns profit / saleValue * 100, or zero when saleValue is not
// positive.
func Margin(profit, saleValue int64) decimal.Decimal {
	if saleValue <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(profit).Div(decimal.NewFromInt(saleValue)).Mul(hundred)
}

// Diff returns computed - baseline and its percentage of baseline. The
// percentage is zero when baseline is zero.
func Diff(computed, baseline decimal.Decimal) types.Difference {
	delta := computed.Sub(baseline)
	if baseline.IsZero() {
		return types.Difference{Delta: delta, Percent: decimal.Zero}
	}
	return types.Difference{Delta: delta, Percent: delta.Div(baseline).Mul(hundred)}
}
