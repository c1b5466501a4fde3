// Package config loads, normalizes, and validates lyrasync configuration.
//
// Configuration is TOML, resolved from an explicit path, then
// ~/.config/lyrasync/config.toml, then ./lyrasync.toml. Missing files fall
// back to repository defaults so the CLI works with zero setup.
package config
