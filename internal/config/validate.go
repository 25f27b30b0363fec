package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Validate checks a configuration for values the pipeline cannot run with.
func Validate(cfg *Config) error {
	if cfg.GitHub.Language == "" {
		return fmt.Errorf("github.language must not be empty")
	}
	if cfg.GitHub.NumRepos < 1 {
		return fmt.Errorf("github.num_repos must be at least 1, got %d", cfg.GitHub.NumRepos)
	}
	if cfg.GitHub.MinStars < 0 {
		return fmt.Errorf("github.min_stars must not be negative, got %d", cfg.GitHub.MinStars)
	}
	if cfg.GitHub.MaxFiles < 1 {
		return fmt.Errorf("github.max_files must be at least 1, got %d", cfg.GitHub.MaxFiles)
	}
	if cfg.GitHub.MaxSamples < 1 {
		return fmt.Errorf("github.max_samples must be at least 1, got %d", cfg.GitHub.MaxSamples)
	}
	if cfg.GitHub.RequestsPerSecond <= 0 {
		return fmt.Errorf("github.requests_per_second must be positive, got %v", cfg.GitHub.RequestsPerSecond)
	}

	if cfg.Filter.MinLines < 1 {
		return fmt.Errorf("filter.min_lines must be at least 1, got %d", cfg.Filter.MinLines)
	}
	if cfg.Filter.MaxLines < cfg.Filter.MinLines {
		return fmt.Errorf("filter.max_lines (%d) must not be below filter.min_lines (%d)",
			cfg.Filter.MaxLines, cfg.Filter.MinLines)
	}

	if cfg.Output.CSVPath == "" {
		return fmt.Errorf("output.csv_path must not be empty")
	}
	if cfg.Output.DBPath == "" {
		return fmt.Errorf("output.db_path must not be empty")
	}

	for _, pattern := range append(append([]string{}, cfg.Paths.Include...), cfg.Paths.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	}

	return nil
}
