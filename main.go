// =============================================================================
// Inventory Validator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Inventory Validator CLI. It checks a
// tab-delimited inventory export against the figures the dashboard reports
// and prints the computed values, the baseline and the differences.
//
// USAGE:
//   inventory-validator <file>            - Reconcile one export
//   inventory-validator version           - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Loader, reconciler, report and supporting packages
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/inventory-validator/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
