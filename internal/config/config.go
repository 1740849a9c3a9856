package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Paths contains directory configuration.
type Paths struct {
	ShareDir string `toml:"share_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Anchor contains configuration for lexical anchor discovery.
type Anchor struct {
	UseDictionary    bool    `toml:"use_dictionary"`
	UseIdentical     bool    `toml:"use_identical"`
	UseCognates      bool    `toml:"use_cognates"`
	MinTokenLength   int     `toml:"min_token_length"`
	UpperCaseOnly    bool    `toml:"upper_case_only"`
	CharSetRegex     string  `toml:"char_set_regex"`
	UseWordFreq      bool    `toml:"use_word_freq"`
	MinMatchLength   int     `toml:"min_match_length"`
	CognateThreshold float64 `toml:"cognate_threshold"`
	CognateRange     float64 `toml:"cognate_range"`
}

// Align contains configuration for the time-overlap engine.
type Align struct {
	Window            int    `toml:"window"`
	MaxMatches        int    `toml:"max_matches"`
	BestAlign         bool   `toml:"best_align"`
	ProportionScoring bool   `toml:"proportion_scoring"`
	Fallback          string `toml:"fallback"`
}

// Project contains configuration for the length-based projector.
type Project struct {
	HardMaxLineLength  int     `toml:"hard_max_line_length"`
	SoftMaxLineLength  int     `toml:"soft_max_line_length"`
	LengthLimitPenalty float64 `toml:"length_limit_penalty"`
	NotEosPenalty      float64 `toml:"not_eos_penalty"`
}

// DictCache contains configuration for the compiled dictionary cache.
type DictCache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Config is the merged configuration for both binaries.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Logging   Logging   `toml:"logging"`
	Anchor    Anchor    `toml:"anchor"`
	Align     Align     `toml:"align"`
	Project   Project   `toml:"project"`
	DictCache DictCache `toml:"dict_cache"`
}

// DefaultConfigPath returns the canonical config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "subalign", "config.toml"), nil
}

// Load reads configuration from path, falling back to defaults when the file
// is absent. An empty path means "default location, optional".
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			cfg.applyEnv()
			cfg.normalize()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", expanded, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", expanded, err)
	}

	cfg.applyEnv()
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if dir := strings.TrimSpace(os.Getenv("SUBALIGN_SHARE_DIR")); dir != "" {
		c.Paths.ShareDir = dir
	}
}

func (c *Config) normalize() {
	if expanded, err := ExpandPath(c.Paths.ShareDir); err == nil {
		c.Paths.ShareDir = expanded
	}
	if expanded, err := ExpandPath(c.DictCache.Dir); err == nil {
		c.DictCache.Dir = expanded
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

// ExpandPath resolves a leading tilde against the user's home directory.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
