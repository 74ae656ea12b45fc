package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config models the site build configuration file (netlify.toml). Plugins
// may mutate parts of it between build phases, so consumers must read it
// fresh through a Snapshot before every constants refresh.
type Config struct {
	Build     BuildConfig     `toml:"build"`
	Functions FunctionsConfig `toml:"functions"`
}

// BuildConfig holds the [build] section fields that feed path constants.
type BuildConfig struct {
	Base          string `toml:"base,omitempty"`
	Publish       string `toml:"publish,omitempty"`
	EdgeFunctions string `toml:"edge_functions,omitempty"`
	Functions     string `toml:"functions,omitempty"` // legacy key, superseded by functions.directory
}

// FunctionsConfig holds the [functions] section.
type FunctionsConfig struct {
	Directory string `toml:"directory,omitempty"`
}

// FunctionsDirectory resolves the effective functions source directory.
// functions.directory wins over the legacy build.functions key. Empty means
// unset and leaves the constant eligible for default detection.
func (c *Config) FunctionsDirectory() string {
	if c.Functions.Directory != "" {
		return c.Functions.Directory
	}
	return c.Build.Functions
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s: %w", configPath, os.ErrNotExist)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the TOML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := toml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
