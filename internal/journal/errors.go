// =============================================================================
// Journal Order Builder - Pipeline Errors
// =============================================================================
//
// The pipeline distinguishes two failure classes:
//
//   ParseError  - the input table is unusable (missing required columns,
//                 unparseable dates). Fatal: the request is aborted and the
//                 message is shown to the caller, because the artifact name
//                 is derived from the min/max dates and cannot be produced
//                 from a broken date column.
//
//   FormatError - a single cell failed to parse during normalization
//                 (a numeric amount, typically). Non-fatal: the cell
//                 degrades to its zero value and processing continues.
//                 Occurrences are collected on the table so they can be
//                 logged with the row they came from.
//
// =============================================================================

package journal

import "fmt"

// ParseError reports an unusable input table.
type ParseError struct {
	// File is the source file path, when known.
	File string

	// Row is the 1-based data row the error was found on, or 0 for
	// table-level problems such as a missing column.
	Row int

	// Column is the source column involved.
	Column string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("parse error in column %q, row %d: %s", e.Column, e.Row, e.Message)
	}
	return fmt.Sprintf("parse error in column %q: %s", e.Column, e.Message)
}

// FormatError reports a single cell that failed to parse and was degraded
// to its zero value.
type FormatError struct {
	// Row is the 1-based data row of the cell.
	Row int

	// Column is the source column of the cell.
	Column string

	// Value is the raw cell content that failed to parse.
	Value string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("format error in column %q, row %d: cannot parse %q, using zero value", e.Column, e.Row, e.Value)
}
