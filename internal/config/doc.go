// Package config loads, normalizes, and validates Kithara configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI and extraction pipeline need: the game soundbank directory, the cache
// tree holding the catalog database and converted audio, and the external tool
// binaries.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
