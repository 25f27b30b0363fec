package config

import (
	"github.com/NguyenThaiVu/methodminer/internal/extract"
)

// Config is the complete methodminer configuration. It can be loaded from
// .methodminer/config.yml with environment variable overrides; the GitHub
// token only ever comes from the environment.
type Config struct {
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`
	Filter FilterConfig `yaml:"filter" mapstructure:"filter"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
}

// GitHubConfig configures repository search and crawl limits.
type GitHubConfig struct {
	Token             string   `yaml:"-" mapstructure:"token"`                                 // env only, never written to disk
	Language          string   `yaml:"language" mapstructure:"language"`                       // search language qualifier
	NumRepos          int      `yaml:"num_repos" mapstructure:"num_repos"`                     // repositories to crawl
	MinStars          int      `yaml:"min_stars" mapstructure:"min_stars"`                     // stars:>N search qualifier
	MaxFiles          int      `yaml:"max_files" mapstructure:"max_files"`                     // per-repo file cap
	MaxSamples        int      `yaml:"max_samples" mapstructure:"max_samples"`                 // total dataset cap
	AllowedLicenses   []string `yaml:"allowed_licenses" mapstructure:"allowed_licenses"`       // license keys; empty allows all
	RequestsPerSecond float64  `yaml:"requests_per_second" mapstructure:"requests_per_second"` // API throttle
}

// FilterConfig holds the method filter thresholds.
type FilterConfig struct {
	MinLines int `yaml:"min_lines" mapstructure:"min_lines"` // non-comment lines, inclusive
	MaxLines int `yaml:"max_lines" mapstructure:"max_lines"` // non-comment lines, inclusive
}

// OutputConfig defines where the dataset and working files land.
type OutputConfig struct {
	CSVPath string `yaml:"csv_path" mapstructure:"csv_path"` // exported dataset
	DBPath  string `yaml:"db_path" mapstructure:"db_path"`   // sqlite store (dedup lives here)
	WorkDir string `yaml:"work_dir" mapstructure:"work_dir"` // zipball downloads
}

// PathsConfig defines which files local extraction visits.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns to extract
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// Default returns a configuration with sensible defaults, mirroring the
// dataset the tool was built to produce: permissively licensed Java methods.
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Language:   "Java",
			NumRepos:   20,
			MinStars:   50,
			MaxFiles:   1000,
			MaxSamples: 30000,
			AllowedLicenses: []string{
				"mit",
				"apache-2.0",
				"bsd-2-clause",
				"bsd-3-clause",
			},
			RequestsPerSecond: 2,
		},
		Filter: FilterConfig{
			MinLines: extract.DefaultMinLines,
			MaxLines: extract.DefaultMaxLines,
		},
		Output: OutputConfig{
			CSVPath: "methods_dataset.csv",
			DBPath:  ".methodminer/dataset.db",
			WorkDir: ".methodminer/repos",
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.java",
				"**/*.c",
				"**/*.h",
				"**/*.ts",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"build/**",
				"target/**",
				"dist/**",
			},
		},
	}
}
