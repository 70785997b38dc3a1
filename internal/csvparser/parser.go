// =============================================================================
// Journal Order Builder - CSV Parser Module
// =============================================================================
//
// This module is responsible for parsing the delimited exports that come out
// of the ticketing system. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Quoted fields with lazy quoting (the export is not strictly RFC 4180)
//   - Rows with inconsistent column counts
//   - Empty rows scattered through the export
//
// Rows are returned as header-keyed maps so both consumers (the journal
// loader and the filter feature) can address fields by name before they
// commit to a typed representation.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// Settings controls how a delimited file is parsed.
type Settings struct {
	// Delimiter is the field separator. Accepts a literal character or the
	// names "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string
}

// CSVData represents the parsed file.
type CSVData struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	// Using maps allows field access by name.
	Rows []map[string]string

	// SourceFile is the path to the source file, when parsed from disk.
	SourceFile string

	// RowCount is the number of data rows (excluding the header).
	RowCount int

	// ColumnCount is the number of columns.
	ColumnCount int
}

// HasColumn reports whether a header is present in the file.
func (d *CSVData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a delimited file from disk and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the file.
//   - settings: The parsing settings.
//
// RETURNS:
//   - A pointer to the CSVData struct containing the parsed data.
//   - An error if the file cannot be read or parsed, or is empty.
func Parse(filePath string, settings Settings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath
	return data, nil
}

// ParseReader parses delimited data from any reader. Uploaded files are
// parsed straight from the request body through this path.
func ParseReader(r io.Reader, settings Settings) (*CSVData, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := cleanHeaders(allRows[0])
	dataRows := extractDataRows(allRows[1:], headers)

	return &CSVData{
		Headers:     headers,
		Rows:        dataRows,
		RowCount:    len(dataRows),
		ColumnCount: len(headers),
	}, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings Settings) {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ',' // Default to comma
		}
	}

	// The export occasionally has short rows and loosely quoted fields.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// cleanHeaders cleans and normalizes header values.
// Empty headers receive a positional placeholder name so row maps never
// collide on the empty string.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// extractDataRows converts raw rows to header-keyed maps, skipping rows
// that are entirely empty. Short rows are padded with empty strings so
// every map carries every header.
func extractDataRows(rows [][]string, headers []string) []map[string]string {
	dataRows := make([]map[string]string, 0, len(rows))

	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for colIndex, header := range headers {
			if colIndex < len(row) {
				rowMap[header] = strings.TrimSpace(row[colIndex])
			} else {
				rowMap[header] = ""
			}
		}

		dataRows = append(dataRows, rowMap)
	}

	return dataRows
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FilterRows returns the rows that match a filter condition, preserving
// file order.
func FilterRows(data *CSVData, filterFunc func(row map[string]string) bool) []map[string]string {
	var filtered []map[string]string

	for _, row := range data.Rows {
		if filterFunc(row) {
			filtered = append(filtered, row)
		}
	}

	return filtered
}
