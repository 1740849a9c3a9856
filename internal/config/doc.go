// Package config loads, normalizes, and validates aligner configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// SUBALIGN_SHARE_DIR, which wins over the file value. The Config type centralizes every knob both binaries
// need; CLI flags override the file values and the merged result is threaded
// through the engines as an immutable value.
package config
