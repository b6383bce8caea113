package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeResolve(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeBeats()
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeResolve() error {
	c.Resolve.PythonPath = strings.TrimSpace(c.Resolve.PythonPath)
	if c.Resolve.PythonPath == "" {
		c.Resolve.PythonPath = defaultPythonPath
	}
	c.Resolve.BridgeScript = strings.TrimSpace(c.Resolve.BridgeScript)
	if c.Resolve.BridgeScript == "" {
		c.Resolve.BridgeScript = defaultBridgeScript
	}
	// Relative bridge paths are resolved against the executable at dial time,
	// so only expand when the user pointed at an explicit location.
	if strings.HasPrefix(c.Resolve.BridgeScript, "~") {
		expanded, err := expandPath(c.Resolve.BridgeScript)
		if err != nil {
			return fmt.Errorf("resolve.bridge_script: %w", err)
		}
		c.Resolve.BridgeScript = expanded
	}
	if c.Resolve.TimeoutSeconds <= 0 {
		c.Resolve.TimeoutSeconds = defaultBridgeTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeCache() error {
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultBeatCachePath
	}
	expanded, err := expandPath(c.Cache.Path)
	if err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	c.Cache.Path = expanded
	return nil
}

func (c *Config) normalizeBeats() {
	c.Beats.TrackType = strings.ToLower(strings.TrimSpace(c.Beats.TrackType))
	if c.Beats.TrackType == "" {
		c.Beats.TrackType = defaultTrackType
	}
	if c.Beats.TrackIndex <= 0 {
		c.Beats.TrackIndex = defaultTrackIndex
	}
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("CUEMARK_OPENAI_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultLLMProvider
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
