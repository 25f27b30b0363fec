package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NguyenThaiVu/methodminer/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "methodminer",
	Short: "methodminer - mine method bodies into a training dataset",
	Long: `methodminer extracts structurally complete method bodies from C-family
source code and assembles them into a deduplicated dataset.

Methods come either from GitHub repositories (crawl) or from a local
directory (extract). Each sample records the method's source, its token
stream, and where it came from.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads configuration relative to the working directory.
func loadConfig() (*config.Config, error) {
	rootDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.NewLoader(rootDir).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
