// Package config loads, normalizes, and validates riplogcheck configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the RIPLOGCHECK_PROFILE environment fallback. The
// Config type carries the checklist profile selection, deduction overrides,
// rule overrides, history storage, and batch settings in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors that
// name the offending TOML key.
package config
