package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for config loading:
// - Defaults load when no config file exists
// - A config file overrides defaults
// - Environment variables override the config file
// - The token comes from METHODMINER_GITHUB_TOKEN or GITHUB_TOKEN
// - Validate rejects unusable threshold and limit values

// Test: no config file means defaults
func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, "Java", cfg.GitHub.Language)
	assert.Equal(t, 20, cfg.GitHub.NumRepos)
	assert.Equal(t, 50, cfg.GitHub.MinStars)
	assert.Equal(t, 3, cfg.Filter.MinLines)
	assert.Equal(t, 100, cfg.Filter.MaxLines)
	assert.Equal(t, "methods_dataset.csv", cfg.Output.CSVPath)
	assert.Contains(t, cfg.GitHub.AllowedLicenses, "apache-2.0")
}

// Test: config file values override defaults
func TestLoad_ConfigFile(t *testing.T) {
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".methodminer")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configYAML := `github:
  language: C
  num_repos: 5
  min_stars: 500
filter:
  min_lines: 5
  max_lines: 40
output:
  csv_path: out.csv
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(configYAML), 0644))

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "C", cfg.GitHub.Language)
	assert.Equal(t, 5, cfg.GitHub.NumRepos)
	assert.Equal(t, 500, cfg.GitHub.MinStars)
	assert.Equal(t, 5, cfg.Filter.MinLines)
	assert.Equal(t, 40, cfg.Filter.MaxLines)
	assert.Equal(t, "out.csv", cfg.Output.CSVPath)

	// Untouched keys keep their defaults
	assert.Equal(t, 1000, cfg.GitHub.MaxFiles)
}

// Test: environment beats the config file
func TestLoad_EnvOverride(t *testing.T) {
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".methodminer")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"),
		[]byte("github:\n  min_stars: 500\n"), 0644))

	t.Setenv("METHODMINER_GITHUB_MIN_STARS", "1000")

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.GitHub.MinStars)
}

// Test: token sources
func TestLoad_Token(t *testing.T) {
	t.Setenv("METHODMINER_GITHUB_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "fallback-token")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, "fallback-token", cfg.GitHub.Token)

	t.Setenv("METHODMINER_GITHUB_TOKEN", "primary-token")
	cfg, err = NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, "primary-token", cfg.GitHub.Token)
}

// Test: validation failures
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty language", func(c *Config) { c.GitHub.Language = "" }},
		{"zero repos", func(c *Config) { c.GitHub.NumRepos = 0 }},
		{"negative stars", func(c *Config) { c.GitHub.MinStars = -1 }},
		{"zero max files", func(c *Config) { c.GitHub.MaxFiles = 0 }},
		{"zero max samples", func(c *Config) { c.GitHub.MaxSamples = 0 }},
		{"zero rate", func(c *Config) { c.GitHub.RequestsPerSecond = 0 }},
		{"zero min lines", func(c *Config) { c.Filter.MinLines = 0 }},
		{"max below min", func(c *Config) { c.Filter.MinLines = 10; c.Filter.MaxLines = 9 }},
		{"empty csv path", func(c *Config) { c.Output.CSVPath = "" }},
		{"empty db path", func(c *Config) { c.Output.DBPath = "" }},
		{"bad glob", func(c *Config) { c.Paths.Include = []string{"[unclosed"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

// Test: defaults validate cleanly
func TestValidate_Defaults(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Validate(Default()))
}
