// =============================================================================
// Inventory Validator - Report Writer
// =============================================================================
//
// This module renders the reconciliation result as a fixed-format text
// report with three sections, in this order:
//   1. The aggregates computed from the export
//   2. The baseline figures, as configured
//   3. The signed differences (computed - baseline), each with its
//      percentage of the baseline
//
// Money is printed as thousands-grouped integers and percentages with two
// decimals. The output depends only on its inputs, so equal results always
// render to identical bytes.
//
// =============================================================================

package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ginjaninja78/inventory-validator/internal/config"
	"github.com/ginjaninja78/inventory-validator/internal/types"
)

// =============================================================================
// LAYOUT
// =============================================================================

const (
	ruleWidth  = 50
	labelWidth = 32
	valueWidth = 15
)

// Section titles.
const (
	TitleComputed    = "INVENTORY VALUE VALIDATION"
	TitleBaseline    = "DASHBOARD VALUES (BASELINE)"
	TitleDifferences = "DIFFERENCES"
)

var printer = message.NewPrinter(language.English)

// =============================================================================
// REPORT
// =============================================================================

// Write renders the report for res against baseline b.
//
// PARAMETERS:
//   - w: The destination, normally stdout.
//   - res: The reconciliation result.
//   - b: The baseline the result was compared with.
//
// RETURNS:
//   - An error if writing fails.
func Write(w io.Writer, res types.ReconciliationResult, b config.Baseline) error {
	bw := bufio.NewWriter(w)

	writeSection(bw, TitleComputed)
	fmt.Fprintf(bw, "%-*s%d\n", labelWidth, "Active products found:", res.ActiveCount)
	writeMoney(bw, "Invested capital:", res.TotalCapital)
	writeMoney(bw, "Sale value:", res.TotalSaleValue)
	writeMoney(bw, "Potential profit:", res.Profit)
	writePercent(bw, "Margin:", res.MarginPercent)

	writeSection(bw, TitleBaseline)
	writeMoney(bw, "Invested capital:", b.KnownCapital)
	writeMoney(bw, "Sale value:", b.KnownSaleValue)
	writeMoney(bw, "Potential profit:", b.KnownProfit)
	writePercent(bw, "Margin:", b.KnownMargin)

	writeSection(bw, TitleDifferences)
	writeDifference(bw, "Invested capital:", GroupInt(res.CapitalDiff.Delta.IntPart()), res.CapitalDiff)
	writeDifference(bw, "Sale value:", GroupInt(res.SaleValueDiff.Delta.IntPart()), res.SaleValueDiff)
	writeDifference(bw, "Potential profit:", GroupInt(res.ProfitDiff.Delta.IntPart()), res.ProfitDiff)
	writeDifference(bw, "Margin:", res.MarginDiff.Delta.StringFixed(2)+"%", res.MarginDiff)

	bw.WriteString("\n")
	return bw.Flush()
}

func writeSection(w *bufio.Writer, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", rule, title, rule)
}

func writeMoney(w *bufio.Writer, label string, amount int64) {
	fmt.Fprintf(w, "%-*s$%*s\n", labelWidth, label, valueWidth, GroupInt(amount))
}

func writePercent(w *bufio.Writer, label string, pct decimal.Decimal) {
	fmt.Fprintf(w, "%-*s%*s%%\n", labelWidth, label, valueWidth+1, pct.StringFixed(2))
}

func writeDifference(w *bufio.Writer, label, value string, d types.Difference) {
	fmt.Fprintf(w, "%-*s%*s (%s)\n", labelWidth, label, valueWidth+1, value, SignedPercent(d))
}

// =============================================================================
// NUMBER FORMATTING
// =============================================================================

// GroupInt formats n with comma thousands separators, e.g. -1,234,567.
func GroupInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// SignedPercent formats the percentage of a difference with two decimals.
// The sign follows the delta: "+" when it is zero or above, a minus when it
// is below zero, even if the percentage rounds to 0.00.
func SignedPercent(d types.Difference) string {
	text := d.Percent.StringFixed(2)
	if d.Percent.IsNegative() && !strings.HasPrefix(text, "-") {
		text = "-" + text
	}
	if d.Delta.IsNegative() {
		return text + "%"
	}
	return "+" + text + "%"
}
