package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "lrc", "srt":
		return nil
	default:
		return fmt.Errorf("output.format must be \"lrc\" or \"srt\", got %q", c.Output.Format)
	}
}

func (c *Config) validateTiming() error {
	if c.Timing.ValidRatio <= 0 || c.Timing.ValidRatio > 1 {
		return errors.New("timing.valid_ratio must be between 0 and 1")
	}
	if c.Timing.ScaleTolerance <= 0 || c.Timing.ScaleTolerance > 1 {
		return errors.New("timing.scale_tolerance must be between 0 and 1")
	}
	if c.Timing.ActivityWeight <= 0 || c.Timing.ActivityWeight >= 1 {
		return errors.New("timing.activity_weight must be between 0 and 1")
	}
	if c.Timing.EmphasisExponent <= 0 {
		return errors.New("timing.emphasis_exponent must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.Enabled && c.Store.MaxTracks < 1 {
		return errors.New("store.max_tracks must be at least 1 when the store is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}
