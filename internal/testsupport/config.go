package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"leetdeck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The default card templates are written under the temp dir so the config is
// immediately usable for a build.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Database = filepath.Join(base, "data", "problems.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Anki.Output = filepath.Join(base, "output")

	templates := WriteTemplates(t, filepath.Join(base, "templates"))
	cfgVal.Anki.Front = templates.Front
	cfgVal.Anki.Back = templates.Back
	cfgVal.Anki.CSS = templates.CSS

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithCompany switches the config to company mode under the given name.
func WithCompany(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Deck.CompanyMode = true
		b.cfg.Deck.Company = name
	}
}

// WithWorkers sets the compile concurrency.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.Workers = n
	}
}

// WithMissingTemplate points the named template (front, back, or css) at a
// file that does not exist.
func WithMissingTemplate(which string) ConfigOption {
	return func(b *configBuilder) {
		missing := filepath.Join(b.baseDir, "missing", which)
		switch which {
		case "front":
			b.cfg.Anki.Front = missing
		case "back":
			b.cfg.Anki.Back = missing
		case "css":
			b.cfg.Anki.CSS = missing
		default:
			b.t.Fatalf("unknown template %q", which)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

// WriteConfigFile writes TOML contents to path.
func WriteConfigFile(t testing.TB, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
