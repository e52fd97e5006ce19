package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templates/*
var templateFS embed.FS

// Default template file names written next to a sample config.
const (
	FrontTemplateName = "front.html"
	BackTemplateName  = "back.html"
	CSSTemplateName   = "style.css"
)

// SampleTemplate returns the embedded default template with the given name.
func SampleTemplate(name string) (string, error) {
	data, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("read sample template %s: %w", name, err)
	}
	return string(data), nil
}

func writeSampleTemplates(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range []string{FrontTemplateName, BackTemplateName, CSSTemplateName} {
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check %s: %w", target, err)
		}
		contents, err := SampleTemplate(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(contents), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
	}
	return nil
}
