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
	if err := c.normalizeAnki(); err != nil {
		return err
	}
	c.normalizeDeck()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("LEETDECK_DATABASE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Database = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaultDatabasePath
	}
	var err error
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAnki() error {
	if value, ok := os.LookupEnv("LEETDECK_OUTPUT"); ok && strings.TrimSpace(value) != "" {
		c.Anki.Output = strings.TrimSpace(value)
	}
	var err error
	if c.Anki.Front, err = expandPath(strings.TrimSpace(c.Anki.Front)); err != nil {
		return fmt.Errorf("anki.front: %w", err)
	}
	if c.Anki.Back, err = expandPath(strings.TrimSpace(c.Anki.Back)); err != nil {
		return fmt.Errorf("anki.back: %w", err)
	}
	if c.Anki.CSS, err = expandPath(strings.TrimSpace(c.Anki.CSS)); err != nil {
		return fmt.Errorf("anki.css: %w", err)
	}
	if c.Anki.Output, err = expandPath(strings.TrimSpace(c.Anki.Output)); err != nil {
		return fmt.Errorf("anki.output: %w", err)
	}
	return nil
}

func (c *Config) normalizeDeck() {
	c.Deck.Company = strings.TrimSpace(c.Deck.Company)
	c.Deck.DefaultName = strings.TrimSpace(c.Deck.DefaultName)
	if c.Deck.DefaultName == "" {
		c.Deck.DefaultName = defaultDeckName
	}
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
