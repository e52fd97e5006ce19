package deck

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"leetdeck/internal/logging"
	"leetdeck/internal/problem"
)

// ProgressFunc is invoked once per compiled or skipped problem. done counts
// finished problems; calls are serialized.
type ProgressFunc func(done, total int, p problem.Problem)

// Skipped records a problem dropped because its fields failed to render.
type Skipped struct {
	DisplayID int
	Title     string
	Err       error
}

// BatchOptions controls CompileAll.
type BatchOptions struct {
	// Workers bounds concurrent compilation; values below 2 compile sequentially.
	Workers int
	// SkipInvalid drops problems that fail to render instead of failing the batch.
	SkipInvalid bool
	Progress    ProgressFunc
}

type compileResult struct {
	note Note
	err  error
}

// CompileAll compiles problems and returns the notes in input order,
// regardless of worker count.
func (c *Compiler) CompileAll(ctx context.Context, problems []problem.Problem, opts BatchOptions) ([]Note, []Skipped, error) {
	results := make([]compileResult, len(problems))

	var (
		mu   sync.Mutex
		done int
	)
	report := func(p problem.Problem) {
		if opts.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		opts.Progress(done, len(problems), p)
	}

	compileOne := func(i int) error {
		p := problems[i]
		note, err := c.Compile(p)
		if err != nil {
			err = fmt.Errorf("compile problem %d (%s): %w", p.DisplayID, p.Title, err)
			if !opts.SkipInvalid {
				return err
			}
		}
		results[i] = compileResult{note: note, err: err}
		report(p)
		return nil
	}

	if opts.Workers < 2 {
		for i := range problems {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			if err := compileOne(i); err != nil {
				return nil, nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := range problems {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return compileOne(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
	}

	notes := make([]Note, 0, len(problems))
	var skipped []Skipped
	for i, res := range results {
		if res.err != nil {
			p := problems[i]
			skipped = append(skipped, Skipped{DisplayID: p.DisplayID, Title: p.Title, Err: res.err})
			logging.WarnWithContext(c.logger, "skipped problem with unrenderable fields", "render_failed",
				logging.Int(logging.FieldProblemID, p.DisplayID),
				logging.Error(res.err),
				logging.String(logging.FieldImpact, "problem omitted from deck"),
			)
			continue
		}
		notes = append(notes, res.note)
	}
	return notes, skipped, nil
}
