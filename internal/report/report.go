// =============================================================================
// CSV to EDI Mapper - Run Report Module
// =============================================================================
//
// Writes an XLSX report for a processing run: one row per input file with the
// outcome, the customer order reference, the line-item count and the failure
// reason where applicable. The report is what the back office files alongside
// the trading-partner acknowledgements, so it favours readability over
// machine parsing.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

// sheetName is the single worksheet the report is written to.
const sheetName = "Run"

// Entry is one processed file in the run report.
type Entry struct {
	InputFile  string
	OutputFile string
	CustOrder  string
	LineItems  int
	Success    bool
	Error      string
	Duration   time.Duration
}

// columns is the header row, in output order.
var columns = []string{
	"Input File", "Output File", "Customer Order", "Line Items",
	"Status", "Error", "Duration",
}

// Write creates the report workbook in dir and returns its path.
// An empty entry list still produces a report recording the (empty) run.
func Write(dir string, entries []Entry) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to rename report sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}

	for i, entry := range entries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			baseName(entry.InputFile),
			baseName(entry.OutputFile),
			entry.CustOrder,
			entry.LineItems,
			status(entry.Success),
			entry.Error,
			entry.Duration.String(),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	// Summary block two rows below the table.
	succeeded := lo.CountBy(entries, func(e Entry) bool { return e.Success })
	summaryCell := fmt.Sprintf("A%d", len(entries)+4)
	summary := []interface{}{
		fmt.Sprintf("Processed %d file(s): %d succeeded, %d failed",
			len(entries), succeeded, len(entries)-succeeded),
	}
	if err := f.SetSheetRow(sheetName, summaryCell, &summary); err != nil {
		return "", fmt.Errorf("failed to write report summary: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", "C", 32); err != nil {
		return "", fmt.Errorf("failed to size report columns: %w", err)
	}

	name := fmt.Sprintf("run_report_%s_%s.xlsx",
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8])
	path := filepath.Join(dir, name)

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	return path, nil
}

func status(success bool) string {
	if success {
		return "OK"
	}
	return "FAILED"
}

// baseName is filepath.Base that maps an empty path (no output was produced)
// to an empty cell instead of ".".
func baseName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
