// =============================================================================
// CSV to EDI Mapper - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks order CSV files
// against the expected format without converting them. All findings for a
// file are reported together so the export can be fixed in one pass.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/validation"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/pkg/utils"
)

// validateFile limits validation to a single input file.
var validateFile string

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate order CSV files without converting them",
	Long: `The validate command checks that order CSV files follow the expected
format: all four sentinel markers present exactly once and in order, a header
section with a field-name row and a value row, a non-empty CUST-ORDER value,
and a lines section with its field-name row.

Unlike process, validation collects every finding instead of stopping at the
first one.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(
		&validateFile,
		"file",
		"",
		"Path to a single order CSV to validate instead of scanning the input directory",
	)
}

func runValidate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var files []string
	if validateFile != "" {
		if !utils.FileExists(validateFile) {
			return fmt.Errorf("input file not found: %s", validateFile)
		}
		files = []string{validateFile}
	} else {
		fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
		files, err = fm.DiscoverInputFiles("*.csv")
		if err != nil {
			return err
		}
	}

	if len(files) == 0 {
		fmt.Println("No order CSV files found to validate.")
		return nil
	}

	invalid := 0
	for _, file := range files {
		rows, err := csvparser.ReadFile(file)
		if err != nil {
			invalid++
			fmt.Printf("  FAIL %s: %v\n", filepath.Base(file), err)
			continue
		}

		result := validation.ValidateFormat(rows)
		if result.Valid {
			fmt.Printf("  ok   %s\n", filepath.Base(file))
			continue
		}

		invalid++
		fmt.Printf("  FAIL %s:\n", filepath.Base(file))
		for i, finding := range result.Findings {
			fmt.Printf("         %d. %s\n", i+1, finding)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", invalid, len(files))
	}

	fmt.Printf("%d file(s) valid\n", len(files))
	return nil
}
