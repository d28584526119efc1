// =============================================================================
// CSV to EDI Mapper - Pipeline
// =============================================================================
//
// This file orchestrates the conversion of a single order file end to end:
//
//   read CSV -> split/parse -> load base template -> transform -> write output
//
// Every invocation parses its own copy of the base template from disk, so
// no state is ever shared between orders. All errors abort the invocation
// before any output is written; there is no partial output and no retry.
//
// =============================================================================

package mapper

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of processing a single order file.
type Result struct {
	// FilePath is the input file that was processed.
	FilePath string

	// OutputFile is the path of the generated XML file, empty on failure.
	OutputFile string

	// CustOrder is the customer order reference from the header.
	CustOrder string

	// LineItems is the number of line-item rows carried into the output.
	LineItems int

	// Success reports whether the transform completed and output was written.
	Success bool

	// Error is the failure cause, nil on success.
	Error error

	// Duration is the wall time spent on this file.
	Duration time.Duration
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline converts one order CSV into one TrueCommerce XML document.
type Pipeline struct {
	csvPath string
	cfg     *config.Config
	log     *zap.Logger
}

// NewPipeline creates a pipeline invocation for one input file.
func NewPipeline(csvPath string, cfg *config.Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{csvPath: csvPath, cfg: cfg, log: log}
}

// Run executes the conversion. It never writes output for a failed order.
func (p *Pipeline) Run() Result {
	start := time.Now()
	result := Result{FilePath: p.csvPath}

	fail := func(err error) Result {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	p.log.Info("processing order file", zap.String("file", p.csvPath))

	rows, err := csvparser.ReadFile(p.csvPath)
	if err != nil {
		return fail(err)
	}

	header, items, err := csvparser.ParseOrder(rows)
	if err != nil {
		return fail(err)
	}

	result.CustOrder = header["CUST-ORDER"]
	result.LineItems = len(items)
	p.log.Debug("parsed order",
		zap.String("cust_order", result.CustOrder),
		zap.Int("header_fields", len(header)),
		zap.Int("line_items", len(items)))

	// The base template must never be shared across invocations; parse a
	// fresh copy for this order.
	doc, err := LoadTemplate(p.cfg.TemplatePath)
	if err != nil {
		return fail(err)
	}

	if err := New(p.log).Transform(doc, header, items); err != nil {
		return fail(err)
	}

	outputPath, err := p.writeOutput(doc, result.CustOrder)
	if err != nil {
		return fail(err)
	}

	result.OutputFile = outputPath
	result.Success = true
	result.Duration = time.Since(start)

	p.log.Info("wrote order document",
		zap.String("output", outputPath),
		zap.Int("line_items", result.LineItems),
		zap.Duration("elapsed", result.Duration))

	return result
}

// writeOutput serializes the mutated document into the output directory.
//
// The file name follows the configured format, by default
// WAITROSE_{cust_order}.XML with the literal header value substituted.
// No sanitization is applied to the order reference.
func (p *Pipeline) writeOutput(doc *etree.Document, custOrder string) (string, error) {
	if custOrder == "" {
		custOrder = "UNKNOWN"
	}

	fileName := utils.GenerateOutputFileName(p.cfg.OutputFormat, map[string]string{
		"cust_order": custOrder,
	})
	outputPath := filepath.Join(p.cfg.OutputDir, fileName)

	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := doc.WriteToFile(outputPath); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	return outputPath, nil
}
