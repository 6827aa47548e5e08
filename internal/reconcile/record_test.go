package reconcile

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/inventory-validator/internal/config"
	"github.com/ginjaninja78/inventory-validator/internal/types"
	"github.com/ginjaninja78/inventory-validator/internal/validation"
)

func candidate(line string, number int) types.Candidate {
	return types.Candidate{Fields: strings.Split(line, "\t"), Line: number}
}

func TestBuildRecord(t *testing.T) {
	cols := config.Default().Columns
	c := candidate(inventoryRow("Tenedor", "$150", "$100", "2 cajas", "x12", "3", "S"), 4)

	rec, ok, err := BuildRecord(c, "Tenedor", cols, 30)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.ProductRecord{
		Name:          "Tenedor",
		StockTotal:    27,
		PurchasePrice: 100,
		SalePrice:     150,
		Capital:       2700,
		SaleValue:     4050,
		Line:          4,
	}, rec)
}

func TestBuildRecordZeroStock(t *testing.T) {
	c := candidate(inventoryRow("Plato", "150", "100", "0", "12", "0", "S"), 2)

	_, ok, err := BuildRecord(c, "Plato", config.Default().Columns, 30)

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildRecordUnparseableFieldsDegradeToZero(t *testing.T) {
	c := candidate(inventoryRow("Vaso", "sin precio", "n/a", "", "", "5", "S"), 3)

	rec, ok, err := BuildRecord(c, "Vaso", config.Default().Columns, 30)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(5), rec.StockTotal)
	assert.Equal(t, int64(0), rec.Capital)
	assert.Equal(t, int64(0), rec.SaleValue)
}

func TestBuildRecordTruncatesName(t *testing.T) {
	name := "Juego de cubiertos de acero inoxidable ñandú"
	c := candidate(inventoryRow(name, "1", "1", "", "", "1", "S"), 2)

	rec, ok, err := BuildRecord(c, name, config.Default().Columns, 30)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Juego de cubiertos de acero in", rec.Name)
	assert.Equal(t, 30, len([]rune(rec.Name)))
}

func TestBuildRecordOutOfRange(t *testing.T) {
	cols := config.Default().Columns

	tests := []struct {
		name  string
		line  string
		field string
	}{
		{
			name:  "digit run too long",
			line:  inventoryRow("A", "99999999999999999999", "1", "", "", "1", "S"),
			field: "sale_price",
		},
		{
			name:  "stock overflow",
			line:  inventoryRow("A", "1", "1", "9223372036854775807", "2", "0", "S"),
			field: "stock_total",
		},
		{
			name:  "capital overflow",
			line:  inventoryRow("A", "1", "9223372036854775807", "", "", "2", "S"),
			field: "capital",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := BuildRecord(candidate(tt.line, 9), "A", cols, 30)

			assert.False(t, ok)
			require.ErrorIs(t, err, validation.ErrValueOutOfRange)

			var recErr *validation.RecordError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, 9, recErr.Line)
			assert.Equal(t, tt.field, recErr.Field)
		})
	}
}

func TestGuardRecordRecoversPanic(t *testing.T) {
	rec, ok, err := guardRecord(12, func() (types.ProductRecord, bool, error) {
		panic("index out of range")
	})

	assert.False(t, ok)
	assert.Equal(t, types.ProductRecord{}, rec)
	require.ErrorIs(t, err, validation.ErrRecordPanic)

	var recErr *validation.RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, 12, recErr.Line)
	assert.Equal(t, "record", recErr.Field)
}

func TestGuardRecordPassesThroughResult(t *testing.T) {
	want := types.ProductRecord{Name: "Tenedor", StockTotal: 1, Line: 3}
	rec, ok, err := guardRecord(3, func() (types.ProductRecord, bool, error) {
		return want, true, nil
	})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, rec)
}
