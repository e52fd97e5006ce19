package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"leetdeck/internal/problem"
	"leetdeck/internal/store"
	"leetdeck/internal/textutil"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored problems in deck order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(s *store.Store) error {
				problems, err := s.Problems(cmd.Context())
				if err != nil {
					return fmt.Errorf("load problems: %w", err)
				}
				if limit > 0 && len(problems) > limit {
					problems = problems[:limit]
				}
				if jsonOutput {
					return writeJSON(cmd, problems)
				}

				out := cmd.OutOrStdout()
				if len(problems) == 0 {
					fmt.Fprintln(out, "No problems stored")
					return nil
				}
				rows := make([][]string, 0, len(problems))
				for _, p := range problems {
					rows = append(rows, []string{
						strconv.Itoa(p.DisplayID),
						p.Title,
						string(p.Level),
						strings.Join(problem.TagNames(p.Tags), ", "),
						strings.Join(problem.TagNames(p.CompanyTags), ", "),
						textutil.Ternary(p.HasSolution(), "yes", "no"),
						strconv.Itoa(len(p.Submissions)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Title", "Difficulty", "Tags", "Companies", "Solution", "Submissions"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many problems")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
