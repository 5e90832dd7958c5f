package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSniffer()
	c.normalizeOrganize()
	c.normalizeLogging()
	c.normalizeWatch()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSniffer() {
	c.Sniffer.Binary = strings.TrimSpace(c.Sniffer.Binary)
	if c.Sniffer.Binary == "" {
		c.Sniffer.Binary = defaultSnifferBinary
	}
	if c.Sniffer.TimeoutSeconds < 0 {
		c.Sniffer.TimeoutSeconds = defaultSnifferTimeoutSeconds
	}
}

func (c *Config) normalizeOrganize() {
	if len(c.Organize.Exclude) == 0 {
		return
	}
	patterns := make([]string, 0, len(c.Organize.Exclude))
	seen := make(map[string]struct{}, len(c.Organize.Exclude))
	for _, pattern := range c.Organize.Exclude {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		patterns = append(patterns, trimmed)
	}
	c.Organize.Exclude = patterns
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func (c *Config) normalizeWatch() {
	if c.Watch.SettleMS <= 0 {
		c.Watch.SettleMS = defaultWatchSettleMS
	}
}
