// =============================================================================
// CSV to EDI Mapper - Main Entry Point
// =============================================================================
//
// This is the main entry point for the CSV to EDI Mapper CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   edimapper process        - Convert order CSV files to TrueCommerce XML
//   edimapper validate       - Check order CSV files without converting
//   edimapper watch          - Convert files as they arrive
//   edimapper version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : core mapping engine and supporting modules
//   - pkg/       : shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/CSV-to-EDI-conversion/cmd"
)

// main simply calls Execute from the cmd package, which initializes and
// runs the Cobra CLI.
func main() {
	cmd.Execute()
}
