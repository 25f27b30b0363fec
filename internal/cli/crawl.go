package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NguyenThaiVu/methodminer/internal/config"
	"github.com/NguyenThaiVu/methodminer/internal/crawler"
	"github.com/NguyenThaiVu/methodminer/internal/dataset"
	"github.com/NguyenThaiVu/methodminer/internal/github"
	"github.com/NguyenThaiVu/methodminer/internal/parsers"
)

var (
	crawlRepos      int
	crawlMinStars   int
	crawlMaxFiles   int
	crawlMaxSamples int
	crawlLanguage   string
	crawlOutput     string
	crawlQuiet      bool
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl GitHub repositories and build a method dataset",
	Long: `Crawl searches GitHub for popular repositories in the configured
language, downloads each repository once, and extracts every method that
passes the structural and length filters.

Samples land in a local SQLite store, deduplicated by content, and are
exported as CSV at the end of the run. An API token is required:

  export METHODMINER_GITHUB_TOKEN=ghp_...

Examples:
  # Crawl with the configured defaults
  methodminer crawl

  # A small test run
  methodminer crawl --repos 3 --max-samples 500

  # C instead of Java
  methodminer crawl --language c
`,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	crawlCmd.Flags().IntVar(&crawlRepos, "repos", 0, "Number of repositories to crawl (overrides config)")
	crawlCmd.Flags().IntVar(&crawlMinStars, "min-stars", 0, "Minimum repository stars (overrides config)")
	crawlCmd.Flags().IntVar(&crawlMaxFiles, "max-files", 0, "Per-repository file cap (overrides config)")
	crawlCmd.Flags().IntVar(&crawlMaxSamples, "max-samples", 0, "Total dataset cap (overrides config)")
	crawlCmd.Flags().StringVar(&crawlLanguage, "language", "", "Source language: java, c, or typescript (overrides config)")
	crawlCmd.Flags().StringVarP(&crawlOutput, "output", "o", "", "CSV output path (overrides config)")
	crawlCmd.Flags().BoolVarP(&crawlQuiet, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling crawl...")
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCrawlFlags(cfg)

	if cfg.GitHub.Token == "" {
		return fmt.Errorf("no GitHub token: set METHODMINER_GITHUB_TOKEN or GITHUB_TOKEN")
	}

	parser, ok := parsers.ForLanguage(cfg.GitHub.Language)
	if !ok {
		return fmt.Errorf("unsupported language %q", cfg.GitHub.Language)
	}

	clientCfg := github.DefaultConfig(cfg.GitHub.Token)
	clientCfg.RequestsPerSecond = cfg.GitHub.RequestsPerSecond
	client, err := github.NewClient(clientCfg)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output.DBPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	store, err := dataset.Open(cfg.Output.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open dataset store: %w", err)
	}
	defer store.Close()

	c := crawler.New(crawler.Options{
		Language:        cfg.GitHub.Language,
		NumRepos:        cfg.GitHub.NumRepos,
		MinStars:        cfg.GitHub.MinStars,
		MaxFiles:        cfg.GitHub.MaxFiles,
		MaxSamples:      cfg.GitHub.MaxSamples,
		AllowedLicenses: cfg.GitHub.AllowedLicenses,
		MinLines:        cfg.Filter.MinLines,
		MaxLines:        cfg.Filter.MaxLines,
		WorkDir:         cfg.Output.WorkDir,
	}, client, parser, store, NewCLIProgressReporter(crawlQuiet))

	stats, err := c.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("crawl cancelled")
		}
		return fmt.Errorf("crawl failed: %w", err)
	}

	if err := exportCSV(store, cfg.Output.CSVPath); err != nil {
		return err
	}

	if crawlQuiet {
		fmt.Printf("Crawl complete: %d samples in %.1fs\n",
			stats.SamplesKept, stats.Duration.Seconds())
	}
	fmt.Printf("Dataset written to %s (%d repos, %d files processed)\n",
		cfg.Output.CSVPath, stats.ReposProcessed, stats.FilesProcessed)
	return nil
}

// applyCrawlFlags overlays explicitly set flags on the loaded configuration.
func applyCrawlFlags(cfg *config.Config) {
	if crawlRepos > 0 {
		cfg.GitHub.NumRepos = crawlRepos
	}
	if crawlMinStars > 0 {
		cfg.GitHub.MinStars = crawlMinStars
	}
	if crawlMaxFiles > 0 {
		cfg.GitHub.MaxFiles = crawlMaxFiles
	}
	if crawlMaxSamples > 0 {
		cfg.GitHub.MaxSamples = crawlMaxSamples
	}
	if crawlLanguage != "" {
		cfg.GitHub.Language = crawlLanguage
	}
	if crawlOutput != "" {
		cfg.Output.CSVPath = crawlOutput
	}
}

// exportCSV dumps the full store, all runs included, to one CSV file.
func exportCSV(store *dataset.Store, path string) error {
	samples, err := store.Samples()
	if err != nil {
		return fmt.Errorf("failed to read samples: %w", err)
	}
	if err := dataset.WriteCSV(path, samples); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
