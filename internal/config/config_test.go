package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.NoColor {
		t.Error("NoColor should default to false")
	}
	if cfg.Verbose {
		t.Error("Verbose should default to false")
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `http_timeout: 5s
no_color: true
verbose: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout)
	}
	if !cfg.NoColor {
		t.Error("NoColor should be true")
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want default 30s", cfg.HTTPTimeout)
	}
}

// TestLoadConfigMalformed tests error on malformed YAML
func TestLoadConfigMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("http_timeout: [broken"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig() should error on malformed YAML")
	}
}

// TestLoadConfigBadDuration tests error on an unparsable duration
func TestLoadConfigBadDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("http_timeout: soon"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig() should error on invalid duration")
	}
}

// TestLoadConfigFromDir tests the .conform/config.yaml convention
func TestLoadConfigFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".conform"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	configPath := filepath.Join(tmpDir, ".conform", "config.yaml")
	if err := os.WriteFile(configPath, []byte("http_timeout: 2s"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Errorf("HTTPTimeout = %v, want 2s", cfg.HTTPTimeout)
	}
}

// TestMergeWithFlags verifies flags override file values
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()

	timeout := 10 * time.Second
	noColor := true
	cfg.MergeWithFlags(&timeout, &noColor, nil)

	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if !cfg.NoColor {
		t.Error("NoColor should be true after merge")
	}
	if cfg.Verbose {
		t.Error("nil flag should leave Verbose untouched")
	}
}

// TestValidate verifies configuration validation
func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	cfg.HTTPTimeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("negative timeout should fail validation")
	}
}
