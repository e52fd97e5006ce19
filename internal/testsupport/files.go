package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"leetdeck/internal/config"
)

// TemplatePaths locates the card template files written for a test.
type TemplatePaths struct {
	Front string
	Back  string
	CSS   string
}

// WriteTemplates copies the embedded sample templates into dir.
func WriteTemplates(t testing.TB, dir string) TemplatePaths {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir templates: %v", err)
	}
	paths := TemplatePaths{
		Front: filepath.Join(dir, config.FrontTemplateName),
		Back:  filepath.Join(dir, config.BackTemplateName),
		CSS:   filepath.Join(dir, config.CSSTemplateName),
	}
	for name, target := range map[string]string{
		config.FrontTemplateName: paths.Front,
		config.BackTemplateName:  paths.Back,
		config.CSSTemplateName:   paths.CSS,
	} {
		contents, err := config.SampleTemplate(name)
		if err != nil {
			t.Fatalf("sample template: %v", err)
		}
		if err := os.WriteFile(target, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", target, err)
		}
	}
	return paths
}
