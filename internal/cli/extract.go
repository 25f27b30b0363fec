package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NguyenThaiVu/methodminer/internal/crawler"
	"github.com/NguyenThaiVu/methodminer/internal/dataset"
)

var (
	extractOutput string
	extractWatch  bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [directory]",
	Short: "Extract methods from a local directory",
	Long: `Extract runs the method extraction pipeline over source files on disk,
no GitHub access involved. Files are selected by the configured include and
ignore globs, samples carry the directory name as their repository.

Examples:
  # Extract from the current directory
  methodminer extract

  # Extract from a specific project
  methodminer extract ~/src/myproject -o myproject.csv

  # Keep extracting as files change
  methodminer extract --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "CSV output path (overrides config)")
	extractCmd.Flags().BoolVarP(&extractWatch, "watch", "w", false, "Watch for file changes and re-extract")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Stopping extraction...")
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if extractOutput != "" {
		cfg.Output.CSVPath = extractOutput
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if len(args) == 1 {
		rootDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid directory %q: %w", args[0], err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output.DBPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	store, err := dataset.Open(cfg.Output.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open dataset store: %w", err)
	}
	defer store.Close()

	extractor, err := crawler.NewLocalExtractor(
		rootDir,
		cfg.Paths.Include,
		cfg.Paths.Ignore,
		cfg.Filter.MinLines,
		cfg.Filter.MaxLines,
		store,
	)
	if err != nil {
		return err
	}

	stats, err := extractor.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("extraction cancelled")
		}
		return fmt.Errorf("extraction failed: %w", err)
	}
	fmt.Printf("Extracted %d samples from %d files in %.1fs\n",
		stats.SamplesKept, stats.FilesProcessed, stats.Duration.Seconds())

	if extractWatch {
		watcher, err := crawler.NewWatcher(extractor)
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer watcher.Stop()

		log.Println("Watching for changes (Ctrl+C to stop)...")
		watcher.Start(ctx)
		<-ctx.Done()
	}

	if err := exportCSV(store, cfg.Output.CSVPath); err != nil {
		return err
	}
	fmt.Printf("Dataset written to %s\n", cfg.Output.CSVPath)
	return nil
}
