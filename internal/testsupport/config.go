package testsupport

import (
	"path/filepath"
	"testing"

	"lyrasync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithOutputFormat overrides the rendered timeline format.
func WithOutputFormat(format string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Output.Format = format
	}
}

// WithStoreMaxTracks overrides the cache bound.
func WithStoreMaxTracks(max int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Store.MaxTracks = max
	}
}
