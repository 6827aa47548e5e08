package reconcile

import (
	"fmt"

	"github.com/ginjaninja78/inventory-validator/internal/config"
	"github.com/ginjaninja78/inventory-validator/internal/types"
	"github.com/ginjaninja78/inventory-validator/internal/validation"
)

// numericField names one numeric column for extraction and error reporting.
type numericField struct {
	name  string
	index int
	dst   *int64
}

// BuildRecord derives the product record of an active candidate.
//
// PARAMETERS:
//   - c: The candidate row.
//   - name: The trimmed product name returned by Classify.
//   - cols: The column positions.
//   - nameMax: The display length the name is truncated to.
//
// RETURNS:
//   - The record and ok=true when the row has stock on hand.
//   - ok=false and a nil error when the stock total is zero.
//   - A *validation.RecordError when any value cannot be derived. Unexpected
//     failures are recovered and reported the same way, so one bad row never
//     ends the run.
func BuildRecord(c types.Candidate, name string, cols config.Columns, nameMax int) (types.ProductRecord, bool, error) {
	return guardRecord(c.Line, func() (types.ProductRecord, bool, error) {
		return buildRecord(c, name, cols, nameMax)
	})
}

// guardRecord runs build and turns a panic into a *validation.RecordError for
// line.
func guardRecord(line int, build func() (types.ProductRecord, bool, error)) (rec types.ProductRecord, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, ok = types.ProductRecord{}, false
			err = validation.NewRecordError(line, "record", "", fmt.Errorf("%w: %v", validation.ErrRecordPanic, r))
		}
	}()
	return build()
}

func buildRecord(c types.Candidate, name string, cols config.Columns, nameMax int) (types.ProductRecord, bool, error) {
	var boxes, unitsPerBox, loose, salePrice, purchasePrice int64
	fields := []numericField{
		{name: "stock_boxes", index: cols.StockBoxes, dst: &boxes},
		{name: "units_per_box", index: cols.UnitsPerBox, dst: &unitsPerBox},
		{name: "loose_units", index: cols.LooseUnits, dst: &loose},
		{name: "sale_price", index: cols.SalePrice, dst: &salePrice},
		{name: "purchase_price", index: cols.PurchasePrice, dst: &purchasePrice},
	}
	for _, f := range fields {
		n, err := FieldNumber(c.Fields, f.index)
		if err != nil {
			return types.ProductRecord{}, false, validation.NewRecordError(c.Line, f.name, c.Field(f.index), err)
		}
		*f.dst = n
	}

	boxed, okMul := mulChecked(boxes, unitsPerBox)
	stockTotal, okAdd := addChecked(boxed, loose)
	if !okMul || !okAdd {
		return types.ProductRecord{}, false, validation.NewRecordError(c.Line, "stock_total", "", validation.ErrValueOutOfRange)
	}
	if stockTotal == 0 {
		return types.ProductRecord{}, false, nil
	}

	capital, okCapital := mulChecked(purchasePrice, stockTotal)
	if !okCapital {
		return types.ProductRecord{}, false, validation.NewRecordError(c.Line, "capital", "", validation.ErrValueOutOfRange)
	}
	saleValue, okSale := mulChecked(salePrice, stockTotal)
	if !okSale {
		return types.ProductRecord{}, false, validation.NewRecordError(c.Line, "sale_value", "", validation.ErrValueOutOfRange)
	}

	return types.ProductRecord{
		Name:          truncateName(name, nameMax),
		StockTotal:    stockTotal,
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		Capital:       capital,
		SaleValue:     saleValue,
		Line:          c.Line,
	}, true, nil
}

// truncateName keeps at most max characters of name.
func truncateName(name string, max int) string {
	return firstRunes(name, max)
}
