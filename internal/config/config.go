package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	CacheDir  string `toml:"cache_dir"`
	LogDir    string `toml:"log_dir"`
}

// Output contains configuration for rendered timeline files.
type Output struct {
	Format    string `toml:"format"`     // "lrc" or "srt"
	LRCHeader bool   `toml:"lrc_header"` // emit ti/ar/length tags
}

// Timing contains tunable thresholds for the reconciliation pipeline.
// Defaults are empirically chosen; adjust only against a labeled corpus.
type Timing struct {
	// ValidRatio is the fraction of entries that must carry finite timing
	// for a candidate source to be considered trustworthy. Default: 0.7
	ValidRatio float64 `toml:"valid_ratio"`
	// ScaleTolerance is the maximum relative deviation accepted when
	// inferring a timestamp unit multiplier. Default: 0.25
	ScaleTolerance float64 `toml:"scale_tolerance"`
	// ActivityWeight positions the vocal-activity threshold between the
	// low and high envelope percentiles. Default: 0.22
	ActivityWeight float64 `toml:"activity_weight"`
	// EmphasisExponent shapes per-sample envelope weights during
	// envelope-guided expansion. Default: 1.25
	EmphasisExponent float64 `toml:"emphasis_exponent"`
}

// Store contains configuration for the resolved-timeline cache.
type Store struct {
	Enabled   bool `toml:"enabled"`
	MaxTracks int  `toml:"max_tracks"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for lyrasync.
//
// Configuration sections by subsystem:
//   - Paths: output, cache, and log directories
//   - Output: rendered timeline format selection
//   - Timing: reconciliation pipeline thresholds
//   - Store: resolved-timeline cache bounds
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Output  Output  `toml:"output"`
	Timing  Timing  `toml:"timing"`
	Store   Store   `toml:"store"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lyrasync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lyrasync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the CLI writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.CacheDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
