package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSniffer(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSniffer() error {
	if c.Sniffer.Enabled && strings.TrimSpace(c.Sniffer.Binary) == "" {
		return errors.New("sniffer.binary must be set when sniffer.enabled is true")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	for _, pattern := range c.Organize.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("organize.exclude: invalid pattern %q", pattern)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
