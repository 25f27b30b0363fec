package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (METHODMINER_*)
// 2. Config file (.methodminer/config.yml or .methodminer/config.yaml)
// 3. Default values
//
// METHODMINER_GITHUB_TOKEN is the only way to supply the API token; it has no
// config-file key on purpose. GITHUB_TOKEN is honored as a fallback.
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".methodminer")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("METHODMINER")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g. METHODMINER_GITHUB_MIN_STARS)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("github.token", "METHODMINER_GITHUB_TOKEN", "GITHUB_TOKEN")
	v.BindEnv("github.language")
	v.BindEnv("github.num_repos")
	v.BindEnv("github.min_stars")
	v.BindEnv("github.max_files")
	v.BindEnv("github.max_samples")
	v.BindEnv("github.requests_per_second")

	v.BindEnv("filter.min_lines")
	v.BindEnv("filter.max_lines")

	v.BindEnv("output.csv_path")
	v.BindEnv("output.db_path")
	v.BindEnv("output.work_dir")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers Default() values with viper so file and env values
// only need to name what they change.
func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("github.language", def.GitHub.Language)
	v.SetDefault("github.num_repos", def.GitHub.NumRepos)
	v.SetDefault("github.min_stars", def.GitHub.MinStars)
	v.SetDefault("github.max_files", def.GitHub.MaxFiles)
	v.SetDefault("github.max_samples", def.GitHub.MaxSamples)
	v.SetDefault("github.allowed_licenses", def.GitHub.AllowedLicenses)
	v.SetDefault("github.requests_per_second", def.GitHub.RequestsPerSecond)

	v.SetDefault("filter.min_lines", def.Filter.MinLines)
	v.SetDefault("filter.max_lines", def.Filter.MaxLines)

	v.SetDefault("output.csv_path", def.Output.CSVPath)
	v.SetDefault("output.db_path", def.Output.DBPath)
	v.SetDefault("output.work_dir", def.Output.WorkDir)

	v.SetDefault("paths.include", def.Paths.Include)
	v.SetDefault("paths.ignore", def.Paths.Ignore)
}
