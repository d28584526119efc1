// =============================================================================
// CSV to EDI Mapper - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// (process, validate, watch, version) are attached to it.
//
// COBRA CLI STRUCTURE:
//   edimapper
//   ├── process   - convert order CSV files to TrueCommerce XML
//   ├── validate  - check order CSV files without converting
//   ├── watch     - convert files as they arrive in the input directory
//   └── version   - display build information
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/config"
)

// cfgFile holds the path to the configuration file, overridable via --config.
var cfgFile string

// verbose forces debug logging regardless of the configured level.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "edimapper",
	Short: "CSV to EDI Mapper - Convert back-office order CSV files to TrueCommerce XML",
	Long: `CSV to EDI Mapper converts structured order CSV files exported by the
back office into TrueCommerce-flavored XML order documents.

Each CSV carries exactly one order as two sentinel-delimited sections: an
order header block and a line-items block. The mapper rewrites a base XML
template in place, substituting header values, creating missing address
elements and expanding the template line item into one OrderLine element per
CSV row.

Example Usage:
  edimapper process                     # Process every CSV in the input directory
  edimapper process --file order.csv    # Process one specific file
  edimapper validate --file order.csv   # Check a file without converting it
  edimapper watch                       # Convert files as they arrive`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configuration file named by --config. A missing file
// with the default name falls back to the built-in defaults so the tool works
// out of the box.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

// newLogger builds the application logger from the configured level.
// The --verbose flag overrides the level to debug.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
