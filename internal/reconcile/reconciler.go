// =============================================================================
// Inventory Validator - Reconciler
// =============================================================================
//
// This module orchestrates one reconciliation run, from the raw export to the
// result handed to the reporter.
//
// PIPELINE:
//   1. Load: open the export as a lazy sequence of lines
//   2. Filter: skip the header and blank lines, keep rows with enough fields
//   3. Classify: keep named rows whose status flag marks them active
//   4. Parse: derive a product record from each active row
//   5. Aggregate: fold records into totals, profit, margin and differences
//
// ERROR HANDLING:
//   - A missing or unreadable file stops the run (loader.ResourceError)
//   - A row that cannot be parsed is logged with its line number and skipped
//
// =============================================================================

package reconcile

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ginjaninja78/inventory-validator/internal/config"
	"github.com/ginjaninja78/inventory-validator/internal/loader"
	"github.com/ginjaninja78/inventory-validator/internal/types"
	"github.com/ginjaninja78/inventory-validator/internal/validation"
)

// Reconciler runs the pipeline for one input file.
type Reconciler struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// New creates a Reconciler.
func New(cfg *config.Config, logger zerolog.Logger) *Reconciler {
	return &Reconciler{cfg: cfg, logger: logger}
}

// Run reconciles the export at path against the configured baseline.
//
// RETURNS:
//   - The reconciliation result. Running twice on the same file yields the
//     same result apart from RunID.
//   - A *loader.ResourceError when the file cannot be read; no partial result
//     is returned in that case.
func (r *Reconciler) Run(path string) (types.ReconciliationResult, error) {
	runID := uuid.NewString()
	log := r.logger.With().Str("run_id", runID).Str("file", path).Logger()

	log.Info().Str("encoding", r.cfg.Input.Encoding).Msg("Reconciling inventory export")

	scanner, err := loader.Open(path, r.cfg.Input)
	if err != nil {
		return types.ReconciliationResult{}, err
	}
	defer scanner.Close()

	var acc Accumulator
	lines := 0

	for scanner.Next() {
		if scanner.LineNumber() <= r.cfg.Input.HeaderRows {
			continue
		}
		lines++
		r.consume(&acc, scanner.Line(), scanner.LineNumber(), log)
	}

	if err := scanner.Err(); err != nil {
		return types.ReconciliationResult{}, err
	}

	result := acc.Result(r.cfg.Baseline)
	result.RunID = runID
	result.Lines = lines

	if skipped := acc.Skipped(); len(skipped) > 0 {
		log.Debug().Msg(validation.FormatErrors(skipped))
	}

	log.Info().
		Int("lines", lines).
		Int("active", result.ActiveCount).
		Int("products", len(result.Products)).
		Int("skipped", result.Skipped).
		Msg("Reconciliation complete")

	return result, nil
}

// consume runs one data line through filter, classification, parsing and
// aggregation.
func (r *Reconciler) consume(acc *Accumulator, line string, number int, log zerolog.Logger) {
	if IsBlank(line) {
		return
	}

	candidate, ok := NewCandidate(line, number, r.cfg.Input)
	if !ok {
		return
	}

	name, active := Classify(candidate, r.cfg.Columns)
	if !active {
		return
	}
	acc.CountActive()

	rec, hasStock, err := BuildRecord(candidate, name, r.cfg.Columns, r.cfg.Input.NameMaxLength)
	if err == nil && hasStock {
		err = acc.Add(rec)
	}
	if err != nil {
		r.skip(acc, number, err, log)
		return
	}
	if !hasStock {
		return
	}

	log.Debug().
		Int("line", number).
		Str("name", rec.Name).
		Int64("stock", rec.StockTotal).
		Int64("purchase_price", rec.PurchasePrice).
		Int64("sale_price", rec.SalePrice).
		Int64("capital", rec.Capital).
		Int64("sale_value", rec.SaleValue).
		Msg("Product accepted")
}

func (r *Reconciler) skip(acc *Accumulator, number int, err error, log zerolog.Logger) {
	var recErr *validation.RecordError
	if !errors.As(err, &recErr) {
		recErr = validation.NewRecordError(number, "record", "", err)
	}
	acc.Skip(recErr)
	log.Warn().Int("line", number).Err(err).Msg("Error processing line, row skipped")
}
