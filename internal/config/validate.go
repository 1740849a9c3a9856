package config

import (
	"errors"
	"fmt"
	"regexp"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnchor(); err != nil {
		return err
	}
	if err := c.validateAlign(); err != nil {
		return err
	}
	if err := c.validateProject(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnchor() error {
	if c.Anchor.CognateThreshold < 0 || c.Anchor.CognateThreshold > 1 {
		return errors.New("anchor.cognate_threshold must be between 0 and 1")
	}
	if c.Anchor.CognateRange < 0 || c.Anchor.CognateRange > 1 {
		return errors.New("anchor.cognate_range must be between 0 and 1")
	}
	if c.Anchor.CognateRange > 0 && !c.Anchor.UseCognates {
		return errors.New("anchor.cognate_range requires anchor.use_cognates")
	}
	if c.Anchor.MinTokenLength < 0 {
		return errors.New("anchor.min_token_length must not be negative")
	}
	if c.Anchor.MinMatchLength < 0 {
		return errors.New("anchor.min_match_length must not be negative")
	}
	if c.Anchor.CharSetRegex != "" {
		if _, err := regexp.Compile(c.Anchor.CharSetRegex); err != nil {
			return fmt.Errorf("anchor.char_set_regex: %w", err)
		}
	}
	return nil
}

func (c *Config) validateAlign() error {
	if c.Align.Window <= 0 {
		return errors.New("align.window must be positive")
	}
	if c.Align.MaxMatches < 0 {
		return errors.New("align.max_matches must not be negative (0 means unbounded)")
	}
	return nil
}

func (c *Config) validateProject() error {
	if c.Project.HardMaxLineLength <= 0 {
		return errors.New("project.hard_max_line_length must be positive")
	}
	if c.Project.SoftMaxLineLength <= 0 || c.Project.SoftMaxLineLength > c.Project.HardMaxLineLength {
		return errors.New("project.soft_max_line_length must be positive and at most the hard limit")
	}
	if c.Project.LengthLimitPenalty <= 0 {
		return errors.New("project.length_limit_penalty must be positive")
	}
	if c.Project.NotEosPenalty <= 0 {
		return errors.New("project.not_eos_penalty must be positive")
	}
	return nil
}
