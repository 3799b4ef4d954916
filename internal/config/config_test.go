package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIBaseURL != "http://localhost:5000/api/v1" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SKILLSPRINT_API_URL", "https://api.example.com/api/v1")
	t.Setenv("SKILLSPRINT_TIMEOUT", "30s")
	t.Setenv("SKILLSPRINT_DATA_DIR", "/tmp/ss")

	cfg := FromEnv()
	if cfg.APIBaseURL != "https://api.example.com/api/v1" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.DataDir != "/tmp/ss" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestFromEnvIgnoresBadTimeout(t *testing.T) {
	t.Setenv("SKILLSPRINT_TIMEOUT", "not-a-duration")

	cfg := FromEnv()
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want default on parse failure", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"https", func(c *Config) { c.APIBaseURL = "https://x.example/api/v1" }, false},
		{"ftp scheme", func(c *Config) { c.APIBaseURL = "ftp://x.example" }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveDataDirExplicit(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{DataDir: dir}

	got, err := cfg.ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("dir = %q, want %q", got, dir)
	}
}

func TestResolveDataDirXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	got, err := Config{}.ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir() error = %v", err)
	}
	if got != base+"/skillsprint" {
		t.Errorf("dir = %q, want %q", got, base+"/skillsprint")
	}
}
