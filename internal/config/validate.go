package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDeck(); err != nil {
		return err
	}
	if err := c.validateAnki(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDeck() error {
	if c.Deck.CompanyMode && strings.TrimSpace(c.Deck.Company) == "" {
		return errors.New("deck.company must be set when deck.company_mode is true")
	}
	if strings.TrimSpace(c.Deck.DefaultName) == "" {
		return errors.New("deck.default_name must be set")
	}
	return nil
}

func (c *Config) validateAnki() error {
	fields := []struct {
		key   string
		value string
	}{
		{"anki.front", c.Anki.Front},
		{"anki.back", c.Anki.Back},
		{"anki.css", c.Anki.CSS},
		{"anki.output", c.Anki.Output},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s must be set", field.key)
		}
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.Workers < 1 {
		return errors.New("render.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
