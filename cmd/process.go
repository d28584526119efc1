// =============================================================================
// CSV to EDI Mapper - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main entry point for
// converting order CSV files to TrueCommerce XML.
//
// PROCESSING PIPELINE (per file):
//   1. Optionally validate the CSV format (pre-flight checks)
//   2. Parse the sentinel-delimited sections into records
//   3. Parse a fresh copy of the base XML template
//   4. Map header fields, expand line items, write the trailer total
//   5. Write the output document
//   6. Archive the input (moved) and the output (copied)
//
// Files are processed sequentially; each order is an independent pipeline
// invocation with its own copy of the base template, so a failure in one
// file never affects another.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/mapper"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/report"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/validation"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/pkg/utils"
)

// filePath limits processing to a single input file.
var filePath string

// dryRun parses and maps without writing output or archiving.
var dryRun bool

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process order CSV files and convert them to TrueCommerce XML",
	Long: `The process command converts order CSV files into TrueCommerce XML
documents using the configured base template.

Without flags it scans the input directory for *.csv files and processes each
one. On success the generated XML is placed in the output directory, the input
CSV is moved to the input archive and the output is copied to the output
archive. Failed inputs stay in the input directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a single order CSV to process instead of scanning the input directory",
	)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse and map without writing output files or archiving",
	)
}

// runProcess orchestrates one processing run.
func runProcess() error {
	startTime := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	inputFiles, err := resolveInputFiles(fm)
	if err != nil {
		return err
	}
	if len(inputFiles) == 0 {
		fmt.Println("No order CSV files found in the input directory.")
		return nil
	}

	log.Info("starting processing run",
		zap.Int("files", len(inputFiles)),
		zap.String("template", cfg.TemplatePath))

	var entries []report.Entry
	var successCount, errorCount int

	for _, file := range inputFiles {
		result := processFile(file, cfg, fm, log)

		entry := report.Entry{
			InputFile:  result.FilePath,
			OutputFile: result.OutputFile,
			CustOrder:  result.CustOrder,
			LineItems:  result.LineItems,
			Success:    result.Success,
			Duration:   result.Duration,
		}

		if result.Success {
			successCount++
			fmt.Printf("  ok   %s -> %s\n", filepath.Base(result.FilePath), filepath.Base(result.OutputFile))
		} else {
			errorCount++
			entry.Error = result.Error.Error()
			fmt.Printf("  FAIL %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}

		entries = append(entries, entry)
	}

	if cfg.ReportDir != "" && !dryRun {
		reportPath, err := report.Write(cfg.ReportDir, entries)
		if err != nil {
			log.Warn("failed to write run report", zap.Error(err))
		} else {
			log.Info("wrote run report", zap.String("report", reportPath))
		}
	}

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:  %d\n", len(inputFiles))
	fmt.Printf("Successful:   %d\n", successCount)
	fmt.Printf("Errors:       %d\n", errorCount)
	fmt.Printf("Time elapsed: %s\n", time.Since(startTime))

	if errorCount > 0 {
		return fmt.Errorf("%d of %d file(s) failed", errorCount, len(inputFiles))
	}
	return nil
}

// processFile runs the full pipeline for one input file, including the
// optional pre-flight validation and post-success archival.
func processFile(file string, cfg *config.Config, fm *utils.FileManager, log *zap.Logger) mapper.Result {
	if cfg.ValidateBeforeProcess {
		if result, err := preflight(file); err != nil {
			return mapper.Result{FilePath: file, Error: err}
		} else if !result.Valid {
			return mapper.Result{
				FilePath: file,
				Error:    fmt.Errorf("format validation failed: %s", result.Findings[0]),
			}
		}
	}

	if dryRun {
		// A dry run still exercises the full parse, template load and
		// transform so problems surface, but writes nothing to disk.
		log.Info("dry run: skipping output", zap.String("file", file))
		rows, err := csvparser.ReadFile(file)
		if err != nil {
			return mapper.Result{FilePath: file, Error: err}
		}
		header, items, err := csvparser.ParseOrder(rows)
		if err != nil {
			return mapper.Result{FilePath: file, Error: err}
		}
		doc, err := mapper.LoadTemplate(cfg.TemplatePath)
		if err != nil {
			return mapper.Result{FilePath: file, Error: err}
		}
		if err := mapper.New(log).Transform(doc, header, items); err != nil {
			return mapper.Result{FilePath: file, Error: err}
		}
		return mapper.Result{
			FilePath:  file,
			CustOrder: header["CUST-ORDER"],
			LineItems: len(items),
			Success:   true,
		}
	}

	result := mapper.NewPipeline(file, cfg, log).Run()
	if !result.Success {
		return result
	}

	if _, err := fm.ArchiveInputFile(file); err != nil {
		log.Warn("failed to archive input file", zap.String("file", file), zap.Error(err))
	}
	if _, err := fm.ArchiveOutputFile(result.OutputFile); err != nil {
		log.Warn("failed to archive output file", zap.String("file", result.OutputFile), zap.Error(err))
	}

	return result
}

// preflight runs the CSV format validator over one file.
func preflight(file string) (validation.Result, error) {
	rows, err := csvparser.ReadFile(file)
	if err != nil {
		return validation.Result{}, err
	}
	return validation.ValidateFormat(rows), nil
}

// resolveInputFiles returns the files for this run: the --file argument if
// given, otherwise every CSV in the input directory.
func resolveInputFiles(fm *utils.FileManager) ([]string, error) {
	if filePath != "" {
		if !utils.FileExists(filePath) {
			return nil, fmt.Errorf("input file not found: %s", filePath)
		}
		return []string{filePath}, nil
	}
	return fm.DiscoverInputFiles("*.csv")
}
