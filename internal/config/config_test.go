package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Align.Window != 25 {
		t.Errorf("window default = %d, want 25", cfg.Align.Window)
	}
	if cfg.Project.HardMaxLineLength != 37 {
		t.Errorf("hard line length default = %d, want 37", cfg.Project.HardMaxLineLength)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[align]
window = 40

[anchor]
use_cognates = true
cognate_threshold = 0.7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Align.Window != 40 {
		t.Errorf("window = %d, want 40", cfg.Align.Window)
	}
	if !cfg.Anchor.UseCognates {
		t.Error("use_cognates should be true")
	}
	// Untouched sections keep defaults.
	if cfg.Project.SoftMaxLineLength != 30 {
		t.Errorf("soft line length = %d, want 30", cfg.Project.SoftMaxLineLength)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestEnvOverridesShareDir(t *testing.T) {
	t.Setenv("SUBALIGN_SHARE_DIR", "/srv/dic")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\nshare_dir = \"/elsewhere\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.ShareDir != "/srv/dic" {
		t.Errorf("share dir = %q, want env override", cfg.Paths.ShareDir)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"cognate range without cognates", func(c *Config) { c.Anchor.CognateRange = 0.6 }},
		{"threshold out of range", func(c *Config) { c.Anchor.CognateThreshold = 1.5 }},
		{"bad charset regex", func(c *Config) { c.Anchor.CharSetRegex = "[" }},
		{"zero window", func(c *Config) { c.Align.Window = 0 }},
		{"soft above hard", func(c *Config) { c.Project.SoftMaxLineLength = 99 }},
		{"zero eos penalty", func(c *Config) { c.Project.NotEosPenalty = 0 }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
