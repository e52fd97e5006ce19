package preflight

import (
	"context"
	"path/filepath"

	"leetdeck/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Output directory", cfg.Anki.Output))
	if cfg.Paths.Database != "" {
		results = append(results, CheckDirectoryAccess("Database directory", filepath.Dir(cfg.Paths.Database)))
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	for _, tmpl := range []struct {
		name string
		path string
	}{
		{"Front template", cfg.Anki.Front},
		{"Back template", cfg.Anki.Back},
		{"Card CSS", cfg.Anki.CSS},
	} {
		if ctx.Err() != nil {
			break
		}
		results = append(results, CheckFileReadable(tmpl.name, tmpl.path))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
