package model

import "time"

// Config holds the complete Factgraph configuration. It is built once by the
// CLI (defaults merged under config file, env and flag overrides) and passed
// explicitly into constructors; nothing reads configuration ambiently.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// PathsConfig locates the two documents the system owns.
type PathsConfig struct {
	ClaimsFile    string `yaml:"claims_file" mapstructure:"claims_file"`       // bulleted claims list
	RelevanceFile string `yaml:"relevance_file" mapstructure:"relevance_file"` // relevance table
}

// CacheConfig controls the renderer's transient read-through row cache.
// Rows cached here are never written back; the store file stays the sole
// source of truth.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Color   bool `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			ClaimsFile:    "Claims.md",
			RelevanceFile: "Relevance.md",
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             30 * time.Second,
			CleanupInterval: 5 * time.Minute,
		},
		Output: OutputConfig{
			Verbose: false,
			Color:   true,
		},
	}
}
