// =============================================================================
// CSV to EDI Mapper - CSV Format Validator
// =============================================================================
//
// Pre-flight validation of an order CSV before it is handed to the mapping
// pipeline. Unlike the parser, which fails fast on the first structural
// problem, the validator collects every finding so the whole file can be
// fixed in one pass. Findings carry enough context for the back office to
// correct the export without reading this code.
//
// Checks performed:
//   - all four sentinel markers are present, each exactly once
//   - each end marker appears after its start marker
//   - the header section is not empty and has a value row
//   - CUST-ORDER is present in the header with a non-empty value
//   - the lines section has its field-name row
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/csvparser"
)

// Result is the outcome of validating one order CSV.
type Result struct {
	// Valid is true when no findings were recorded.
	Valid bool

	// Findings lists every format problem, in the order discovered.
	Findings []string
}

// ValidateFormat checks raw CSV rows against the expected order file format.
func ValidateFormat(rows [][]string) Result {
	var findings []string
	record := func(format string, args ...interface{}) {
		findings = append(findings, fmt.Sprintf(format, args...))
	}

	if len(rows) == 0 {
		record("file is empty")
		return Result{Valid: false, Findings: findings}
	}

	// Locate every marker occurrence.
	occurrences := map[string][]int{}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		marker := strings.TrimSpace(row[0])
		switch marker {
		case csvparser.MarkerHeader, csvparser.MarkerHeaderEnd,
			csvparser.MarkerLines, csvparser.MarkerLinesEnd:
			occurrences[marker] = append(occurrences[marker], i)
		}
	}

	for _, marker := range []string{
		csvparser.MarkerHeader, csvparser.MarkerHeaderEnd,
		csvparser.MarkerLines, csvparser.MarkerLinesEnd,
	} {
		switch n := len(occurrences[marker]); {
		case n == 0:
			record("missing required marker %s", marker)
		case n > 1:
			record("marker %s appears %d times, expected once", marker, n)
		}
	}

	headerRange := sectionRange(occurrences, csvparser.MarkerHeader, csvparser.MarkerHeaderEnd, record, "header")
	linesRange := sectionRange(occurrences, csvparser.MarkerLines, csvparser.MarkerLinesEnd, record, "lines")

	if headerRange != nil {
		headerRows := rows[headerRange[0]:headerRange[1]]
		switch {
		case len(headerRows) == 0:
			record("header section is empty")
		case len(headerRows) < 2:
			record("header section has no value row")
		default:
			checkCustOrder(headerRows, record)
		}
	}

	if linesRange != nil && linesRange[1]-linesRange[0] == 0 {
		record("lines section is empty")
	}

	return Result{Valid: len(findings) == 0, Findings: findings}
}

// sectionRange resolves the content range of one sentinel pair, recording a
// finding when the markers are misordered. Returns nil if the range cannot
// be established.
func sectionRange(occurrences map[string][]int, start, end string, record func(string, ...interface{}), name string) *[2]int {
	starts, ends := occurrences[start], occurrences[end]
	if len(starts) != 1 || len(ends) != 1 {
		return nil
	}
	if ends[0] <= starts[0] {
		record("%s end marker must come after its start marker", name)
		return nil
	}
	return &[2]int{starts[0] + 1, ends[0]}
}

// checkCustOrder verifies the mandatory customer order reference.
func checkCustOrder(headerRows [][]string, record func(string, ...interface{})) {
	header, err := csvparser.ParseHeader(headerRows)
	if err != nil {
		record("header section could not be parsed: %v", err)
		return
	}

	value, present := header["CUST-ORDER"]
	switch {
	case !present:
		record("CUST-ORDER field is required in the header section")
	case value == "":
		record("CUST-ORDER field is required but empty")
	}
}
