package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config holds all client configuration.
type Config struct {
	// APIBaseURL is the root of the SkillSprint REST API, including the
	// version prefix. Default: "http://localhost:5000/api/v1".
	APIBaseURL string

	// Timeout is the maximum duration for a single API request.
	// Default: 15s.
	Timeout time.Duration

	// DataDir is where the client keeps its session files and the local
	// sprint history database.
	DataDir string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIBaseURL: "http://localhost:5000/api/v1",
		Timeout:    15 * time.Second,
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("SKILLSPRINT_API_URL"); u != "" {
		cfg.APIBaseURL = u
	}
	if t := os.Getenv("SKILLSPRINT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if d := os.Getenv("SKILLSPRINT_DATA_DIR"); d != "" {
		cfg.DataDir = d
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid SKILLSPRINT_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("SKILLSPRINT_API_URL must be http or https, got %q", c.APIBaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// ResolveDataDir returns the data directory, creating it if needed.
// Resolution order: DataDir field, $XDG_DATA_HOME/skillsprint,
// ~/.local/share/skillsprint.
func (c Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			dataHome = filepath.Join(home, ".local", "share")
		}
		dir = filepath.Join(dataHome, "skillsprint")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}
