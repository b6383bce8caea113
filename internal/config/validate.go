package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBeats(); err != nil {
		return err
	}
	if err := c.validateResolve(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBeats() error {
	switch c.Beats.TrackType {
	case "audio", "video":
	default:
		return fmt.Errorf("beats.track_type must be %q or %q, got %q", "audio", "video", c.Beats.TrackType)
	}
	if c.Beats.TrackIndex < 1 {
		return errors.New("beats.track_index must be 1 or greater")
	}
	return nil
}

func (c *Config) validateResolve() error {
	if c.Resolve.PythonPath == "" {
		return errors.New("resolve.python_path must be set")
	}
	if c.Resolve.BridgeScript == "" {
		return errors.New("resolve.bridge_script must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", "console", "json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
