// Package config loads, normalizes, and validates filerename configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files and also accepts the legacy JSON rule document
// ({"remove": [...], "replace": {...}}) with replacement order preserved. The
// Config type centralizes the rename rules, the managed extension sets, the
// tag writer settings, and logging knobs.
//
// Always obtain settings through this package so downstream code receives
// normalized extensions, expanded paths, and clear validation errors.
package config
