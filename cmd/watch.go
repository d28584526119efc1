// =============================================================================
// CSV to EDI Mapper - Watch Command
// =============================================================================
//
// This file defines the 'watch' command, which monitors the input directory
// and converts order CSV files as they arrive. Events are handled one at a
// time; each file runs the same pipeline the process command uses.
//
// Writers that create-then-write can deliver the create event before the
// file is complete, so handling waits briefly before parsing.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/CSV-to-EDI-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-EDI-conversion/pkg/utils"
)

// settleDelay is how long to wait after a create event before reading the
// file, giving slow writers time to finish.
const settleDelay = 250 * time.Millisecond

// watchCmd represents the 'watch' command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert order CSV files as they arrive in the input directory",
	Long: `The watch command monitors the input directory and runs the conversion
pipeline whenever a new CSV file appears. Files already present when the watch
starts are processed first. Stop with Ctrl-C.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch() error {
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

	// Drain anything already waiting before watching for new arrivals.
	existing, err := fm.DiscoverInputFiles("*.csv")
	if err != nil {
		return err
	}
	for _, file := range existing {
		handleArrival(file, cfg, fm, log)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.InputDir); err != nil {
		return fmt.Errorf("failed to watch input directory: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Info("watching input directory", zap.String("dir", cfg.InputDir))
	fmt.Printf("Watching %s for order CSV files (Ctrl-C to stop)...\n", cfg.InputDir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
				continue
			}

			time.Sleep(settleDelay)
			if !utils.FileExists(event.Name) {
				continue
			}
			handleArrival(event.Name, cfg, fm, log)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))

		case <-stop:
			log.Info("stopping watch")
			return nil
		}
	}
}

// handleArrival processes one newly arrived file and prints the outcome.
func handleArrival(file string, cfg *config.Config, fm *utils.FileManager, log *zap.Logger) {
	result := processFile(file, cfg, fm, log)
	if result.Success {
		fmt.Printf("  ok   %s -> %s\n", filepath.Base(result.FilePath), filepath.Base(result.OutputFile))
	} else {
		fmt.Printf("  FAIL %s: %v\n", filepath.Base(result.FilePath), result.Error)
	}
}
