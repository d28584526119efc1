// =============================================================================
// CSV to EDI Mapper - CSV Parser Module
// =============================================================================
//
// This module parses the two-section order CSV exported by the back office.
// The file carries exactly one order and is delimited with sentinel rows:
//
//   ###ORD-HEADER
//   CUST-ORDER,CUST-ADDR-CODE,...        <- header field names
//   CUST-001,CA0,...                     <- header field values
//   ###ORD-HEADER-END
//   ###ORD-LINES
//   LINE-NO,LINE-CODE,...                <- line item field names
//   1,32815,...                          <- one row per ordered product
//   ###ORD-LINES-END
//
// The parser is split the same way the pipeline consumes it:
//   1. SplitSections  - locate the sentinel rows and slice out both blocks
//   2. ParseHeader    - zip the two header rows into a HeaderRecord
//   3. ParseLineItems - pair the field-name row with every data row, in order
//
// Row order in the line-items block is authoritative: it determines the
// document order of the generated OrderLine elements. The LINE-NO column is
// just another mapped field and is never used for ordering.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
)

// =============================================================================
// SENTINEL MARKERS
// =============================================================================

// Sentinel markers recognised in the first cell of a row. Remaining cells on
// a marker row are ignored.
const (
	MarkerHeader    = "###ORD-HEADER"
	MarkerHeaderEnd = "###ORD-HEADER-END"
	MarkerLines     = "###ORD-LINES"
	MarkerLinesEnd  = "###ORD-LINES-END"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// HeaderRecord maps a header field name (e.g. "CUST-ORDER") to its value.
// Values may be empty strings; an empty value means "no update", never
// absence. The record is built once per input and not modified afterwards.
type HeaderRecord map[string]string

// LineItemRecord maps a line-item field name (e.g. "LINE-CODE") to its value.
// One record exists per data row; the sequence order is meaningful.
type LineItemRecord map[string]string

// Sections holds the row ranges strictly between the sentinel pairs.
type Sections struct {
	// Header contains the rows between ###ORD-HEADER and ###ORD-HEADER-END.
	Header [][]string

	// Lines contains the rows between ###ORD-LINES and ###ORD-LINES-END.
	Lines [][]string
}

// =============================================================================
// ERROR TYPE
// =============================================================================

// MalformedInputError reports a structural problem with the order CSV:
// missing, duplicated or misordered sentinels, or a section that is missing
// required content. It is fatal to the transform.
type MalformedInputError struct {
	// Reason describes what is wrong with the input.
	Reason string
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed order CSV: %s", e.Reason)
}

func malformed(format string, args ...interface{}) *MalformedInputError {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}

// =============================================================================
// FILE READING
// =============================================================================

// ReadFile reads a CSV file into raw rows. Rows may have a variable number
// of cells; the record parsers pad or truncate as needed.
func ReadFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return rows, nil
}

// =============================================================================
// SECTION SPLITTER
// =============================================================================

// SplitSections scans the input rows, locates the four sentinel rows and
// returns the row ranges strictly between each start/end pair.
//
// Constraints enforced here:
//   - each sentinel occurs exactly once
//   - the header section appears before the lines section
//   - the header section is not empty
//   - the lines section contains at least the field-name row
//
// Any violation returns a *MalformedInputError. The splitter has no side
// effects beyond validation.
func SplitSections(rows [][]string) (*Sections, error) {
	positions := map[string]int{}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		marker := strings.TrimSpace(row[0])
		switch marker {
		case MarkerHeader, MarkerHeaderEnd, MarkerLines, MarkerLinesEnd:
			if _, seen := positions[marker]; seen {
				return nil, malformed("duplicate %s marker", marker)
			}
			positions[marker] = i
		}
	}

	for _, marker := range []string{MarkerHeader, MarkerHeaderEnd, MarkerLines, MarkerLinesEnd} {
		if _, ok := positions[marker]; !ok {
			return nil, malformed("missing %s marker", marker)
		}
	}

	headerStart := positions[MarkerHeader]
	headerEnd := positions[MarkerHeaderEnd]
	linesStart := positions[MarkerLines]
	linesEnd := positions[MarkerLinesEnd]

	if headerEnd < headerStart {
		return nil, malformed("%s appears before %s", MarkerHeaderEnd, MarkerHeader)
	}
	if linesEnd < linesStart {
		return nil, malformed("%s appears before %s", MarkerLinesEnd, MarkerLines)
	}
	if linesStart < headerEnd {
		return nil, malformed("header section must appear before the lines section")
	}

	sections := &Sections{
		Header: rows[headerStart+1 : headerEnd],
		Lines:  rows[linesStart+1 : linesEnd],
	}

	if len(sections.Header) == 0 {
		return nil, malformed("header section is empty")
	}
	if len(sections.Lines) == 0 {
		return nil, malformed("lines section is missing its field-name row")
	}

	return sections, nil
}

// =============================================================================
// HEADER RECORD PARSER
// =============================================================================

// ParseHeader zips the two header rows (field names, then field values)
// positionally into a HeaderRecord.
//
// A header cell with no matching value cell maps to the empty string; extra
// value cells are ignored. Fewer than two rows is a *MalformedInputError.
func ParseHeader(headerRows [][]string) (HeaderRecord, error) {
	if len(headerRows) < 2 {
		return nil, malformed("header section needs a field-name row and a value row, got %d row(s)", len(headerRows))
	}

	names := trimCells(headerRows[0])
	values := trimCells(headerRows[1])

	record := make(HeaderRecord, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		if i < len(values) {
			record[name] = values[i]
		} else {
			record[name] = ""
		}
	}

	return record, nil
}

// =============================================================================
// LINE-ITEM RECORD PARSER
// =============================================================================

// ParseLineItems pairs the field-name row with every subsequent data row,
// producing one LineItemRecord per row in exactly the input order.
//
// Rows shorter than the field-name row pad missing trailing cells with the
// empty string; longer rows ignore the excess. Fully empty rows are skipped.
// Zero data rows is valid and yields an empty sequence.
func ParseLineItems(lineRows [][]string) ([]LineItemRecord, error) {
	if len(lineRows) == 0 {
		return nil, malformed("lines section is missing its field-name row")
	}

	names := trimCells(lineRows[0])

	items := make([]LineItemRecord, 0, len(lineRows)-1)
	for _, row := range lineRows[1:] {
		cells := trimCells(row)
		if isRowEmpty(cells) {
			continue
		}

		record := make(LineItemRecord, len(names))
		for i, name := range names {
			if name == "" {
				continue
			}
			if i < len(cells) {
				record[name] = cells[i]
			} else {
				record[name] = ""
			}
		}
		items = append(items, record)
	}

	return items, nil
}

// =============================================================================
// CONVENIENCE
// =============================================================================

// ParseOrder runs the splitter and both record parsers over raw rows.
func ParseOrder(rows [][]string) (HeaderRecord, []LineItemRecord, error) {
	sections, err := SplitSections(rows)
	if err != nil {
		return nil, nil, err
	}

	header, err := ParseHeader(sections.Header)
	if err != nil {
		return nil, nil, err
	}

	items, err := ParseLineItems(sections.Lines)
	if err != nil {
		return nil, nil, err
	}

	return header, items, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func trimCells(row []string) []string {
	return lo.Map(row, func(cell string, _ int) string {
		return strings.TrimSpace(cell)
	})
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
