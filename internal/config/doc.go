// Package config loads, normalizes, and validates leetdeck configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LEETDECK_DATABASE. The Config value is built once by the CLI and handed to
// the deck pipeline by reference; nothing in the module reads configuration
// from process-wide state.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
