// =============================================================================
// Journal Order Builder - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Journal Order Builder application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   journal process --file x.csv  - Build a workbook from one CSV export
//   journal serve                 - Start the HTTP upload service
//   journal version               - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/arenabooks/journal-order/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
