package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"leetdeck/internal/apkg"
	"leetdeck/internal/config"
	"leetdeck/internal/deck"
	"leetdeck/internal/logging"
	"leetdeck/internal/markdown"
	"leetdeck/internal/preflight"
	"leetdeck/internal/problem"
	"leetdeck/internal/store"
)

type buildFlags struct {
	output      string
	company     string
	workers     int
	skipInvalid bool
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile stored problems into an .apkg package",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyBuildFlags(cmd, cfg, flags); err != nil {
				return err
			}

			failed := preflight.Failed(preflight.RunAll(cmd.Context(), cfg))
			if len(failed) > 0 {
				var details []string
				for _, r := range failed {
					details = append(details, fmt.Sprintf("%s: %s", r.Name, r.Detail))
				}
				return fmt.Errorf("preflight failed: %s", strings.Join(details, "; "))
			}

			baseLogger, logCloser, err := ctx.logger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logCloser.Close()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			runCtx := logging.WithRunID(signalCtx, uuid.NewString())
			logger := logging.WithContext(runCtx, baseLogger)

			var result deck.Result
			err = ctx.withStore(runCtx, func(s *store.Store) error {
				sampler := logging.NewProgressSampler(10)
				progress := func(done, total int, p problem.Problem) {
					attrs := logging.Args(
						logging.String(logging.FieldComponent, "build"),
						logging.Int("done", done),
						logging.Int("total", total),
						logging.Int(logging.FieldProblemID, p.DisplayID),
					)
					if sampler.ShouldLog(done, total) {
						logger.Info("compile progress", attrs...)
						return
					}
					logger.Debug("compile progress", attrs...)
				}
				pipeline := deck.NewPipeline(cfg, s, markdown.New(), apkg.NewWriter(logger), logger, deck.Options{
					Progress: progress,
				})
				result, err = pipeline.Run(runCtx)
				return err
			})
			if err != nil {
				if errors.Is(err, apkg.ErrLocked) {
					return fmt.Errorf("%w (is another build running?)", err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Deck", "Deck ID", "Notes", "Skipped", "Duration", "Package"},
				[][]string{{
					result.Name,
					strconv.FormatInt(result.DeckID, 10),
					strconv.Itoa(result.Notes),
					strconv.Itoa(len(result.Skipped)),
					result.Duration.Round(time.Millisecond).String(),
					result.Path,
				}},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))
			if len(result.Skipped) > 0 {
				rows := make([][]string, 0, len(result.Skipped))
				for _, s := range result.Skipped {
					rows = append(rows, []string{strconv.Itoa(s.DisplayID), s.Title, s.Err.Error()})
				}
				fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Error"}, rows, []columnAlignment{alignRight}))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Directory that receives the package (overrides anki.output)")
	cmd.Flags().StringVar(&flags.company, "company", "", "Build a company deck named after this company")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Concurrent note compilation (overrides render.workers)")
	cmd.Flags().BoolVar(&flags.skipInvalid, "skip-invalid", false, "Skip problems whose fields fail to render")
	return cmd
}

func applyBuildFlags(cmd *cobra.Command, cfg *config.Config, flags buildFlags) error {
	if cmd.Flags().Changed("output") {
		output, err := config.ExpandPath(strings.TrimSpace(flags.output))
		if err != nil {
			return fmt.Errorf("resolve output: %w", err)
		}
		cfg.Anki.Output = output
	}
	if cmd.Flags().Changed("company") {
		cfg.Deck.CompanyMode = true
		cfg.Deck.Company = strings.TrimSpace(flags.company)
	}
	if cmd.Flags().Changed("workers") {
		cfg.Render.Workers = flags.workers
	}
	if cmd.Flags().Changed("skip-invalid") {
		cfg.Render.SkipInvalid = flags.skipInvalid
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.EnsureDirectories()
}
