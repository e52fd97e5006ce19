package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"leetdeck/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantDB := filepath.Join(tempHome, ".local", "share", "leetdeck", "problems.db")
	if cfg.Paths.Database != wantDB {
		t.Fatalf("unexpected database path: got %q want %q", cfg.Paths.Database, wantDB)
	}
	wantFront := filepath.Join(tempHome, ".config", "leetdeck", "templates", "front.html")
	if cfg.Anki.Front != wantFront {
		t.Fatalf("unexpected front template: got %q want %q", cfg.Anki.Front, wantFront)
	}
	if cfg.DeckName() != "Leetcode" {
		t.Fatalf("expected default deck name, got %q", cfg.DeckName())
	}
	if cfg.Render.Workers != 1 {
		t.Fatalf("expected sequential compilation by default, got %d workers", cfg.Render.Workers)
	}
	if cfg.Render.SkipInvalid {
		t.Fatal("expected rendering failures to be fatal by default")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Anki.Output, cfg.Paths.LogDir, filepath.Dir(cfg.Paths.Database)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPathCompanyMode(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "leetdeck.toml")

	type payload struct {
		Deck struct {
			CompanyMode bool   `toml:"company_mode"`
			Company     string `toml:"company"`
		} `toml:"deck"`
		Anki struct {
			Output string `toml:"output"`
		} `toml:"anki"`
		Render struct {
			Workers int `toml:"workers"`
		} `toml:"render"`
	}
	custom := payload{}
	custom.Deck.CompanyMode = true
	custom.Deck.Company = "  Acme  "
	custom.Anki.Output = filepath.Join(tempDir, "out")
	custom.Render.Workers = 4
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.DeckName() != "Acme" {
		t.Fatalf("expected company deck name, got %q", cfg.DeckName())
	}
	if cfg.Anki.Output != filepath.Join(tempDir, "out") {
		t.Fatalf("unexpected output dir: %q", cfg.Anki.Output)
	}
	if cfg.Render.Workers != 4 {
		t.Fatalf("expected 4 workers, got %d", cfg.Render.Workers)
	}
}

func TestEnvOverridesDatabaseAndOutput(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("LEETDECK_DATABASE", filepath.Join(tempDir, "env.db"))
	t.Setenv("LEETDECK_OUTPUT", filepath.Join(tempDir, "env-out"))

	cfg, _, _, err := config.Load(filepath.Join(tempDir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Database != filepath.Join(tempDir, "env.db") {
		t.Errorf("expected database from env, got %q", cfg.Paths.Database)
	}
	if cfg.Anki.Output != filepath.Join(tempDir, "env-out") {
		t.Errorf("expected output from env, got %q", cfg.Anki.Output)
	}
}

func TestCreateSample(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "company_mode") {
		t.Fatalf("sample config missing company_mode: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Deck.DefaultName != "Leetcode" {
		t.Fatalf("unexpected sample default name %q", cfg.Deck.DefaultName)
	}

	for _, name := range []string{config.FrontTemplateName, config.BackTemplateName, config.CSSTemplateName} {
		data, err := os.ReadFile(filepath.Join(dir, "templates", name))
		if err != nil {
			t.Fatalf("expected sample template %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("sample template %s is empty", name)
		}
	}
}

func TestCreateSampleKeepsExistingTemplates(t *testing.T) {
	dir := t.TempDir()
	front := filepath.Join(dir, "templates", config.FrontTemplateName)
	if err := os.MkdirAll(filepath.Dir(front), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(front, []byte("custom"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := config.CreateSample(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(front)
	if err != nil {
		t.Fatalf("read front: %v", err)
	}
	if string(data) != "custom" {
		t.Fatalf("expected existing template preserved, got %q", data)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Deck.CompanyMode = true
	cfg.Deck.Company = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for company mode without company")
	}

	cfg = config.Default()
	cfg.Render.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero workers")
	}

	cfg = config.Default()
	cfg.Anki.CSS = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing css path")
	}

	cfg = config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
