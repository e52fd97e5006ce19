package deck

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"leetdeck/internal/config"
	"leetdeck/internal/logging"
	"leetdeck/internal/problem"
)

// Source supplies problem records in ascending display-id order.
type Source interface {
	Problems(ctx context.Context) ([]problem.Problem, error)
}

// Options tunes a pipeline run beyond what the config carries.
type Options struct {
	// Workers overrides cfg.Render.Workers when positive.
	Workers int
	// NewID overrides the deck identifier source.
	NewID    IDSource
	Progress ProgressFunc
}

// Result summarizes a completed build.
type Result struct {
	Path     string
	DeckID   int64
	Name     string
	Notes    int
	Skipped  []Skipped
	Duration time.Duration
}

// Pipeline builds a model, compiles every stored problem, and writes the
// resulting package.
type Pipeline struct {
	cfg      *config.Config
	source   Source
	compiler *Compiler
	writer   PackageWriter
	opts     Options
	logger   *slog.Logger
}

// NewPipeline wires the stages together.
func NewPipeline(cfg *config.Config, source Source, renderer Renderer, writer PackageWriter, logger *slog.Logger, opts Options) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		source:   source,
		compiler: NewCompiler(renderer, logger),
		writer:   writer,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "deck"),
	}
}

// Run executes one build. Template or storage failures abort before any
// output is written.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	name := p.cfg.DeckName()

	text, err := LoadTemplates(TemplateFiles{
		Front: p.cfg.Anki.Front,
		Back:  p.cfg.Anki.Back,
		CSS:   p.cfg.Anki.CSS,
	})
	if err != nil {
		return Result{}, fmt.Errorf("build model: %w", err)
	}
	model := BuildModel(name, text)

	problems, err := p.source.Problems(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load problems: %w", err)
	}
	if len(problems) == 0 {
		logging.WarnWithContext(p.logger, "problem store is empty", "empty_store",
			logging.String(logging.FieldImpact, "package will contain no notes"),
		)
	}

	workers := p.cfg.Render.Workers
	if p.opts.Workers > 0 {
		workers = p.opts.Workers
	}
	p.logger.Info("compiling notes",
		logging.Int("problems", len(problems)),
		logging.Int("workers", workers),
		logging.String("deck_name", name),
	)
	notes, skipped, err := p.compiler.CompileAll(ctx, problems, BatchOptions{
		Workers:     workers,
		SkipInvalid: p.cfg.Render.SkipInvalid,
		Progress:    p.opts.Progress,
	})
	if err != nil {
		return Result{}, err
	}

	d := NewDeck(name, p.opts.NewID)
	d.Add(notes...)

	path := PackagePath(p.cfg.Anki.Output, name)
	if err := p.writer.Write(ctx, path, model, d); err != nil {
		return Result{}, fmt.Errorf("write package: %w", err)
	}

	result := Result{
		Path:     path,
		DeckID:   d.ID,
		Name:     name,
		Notes:    len(d.Notes),
		Skipped:  skipped,
		Duration: time.Since(start),
	}
	p.logger.Info("deck written",
		logging.String("path", path),
		logging.Int64(logging.FieldDeckID, d.ID),
		logging.Int("notes", result.Notes),
		logging.Int("skipped", len(skipped)),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}
