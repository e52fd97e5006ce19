package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"leetdeck/internal/apkg"
	"leetdeck/internal/config"
)

func newInspectCommand() *cobra.Command {
	var showNotes bool

	cmd := &cobra.Command{
		Use:         "inspect FILE.apkg",
		Short:       "Summarize the decks, model, and notes in a package",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve package path: %w", err)
			}
			contents, err := apkg.Inspect(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			deckRows := make([][]string, 0, len(contents.Decks))
			for _, d := range contents.Decks {
				notes := 0
				for _, n := range contents.Notes {
					if n.DeckID == d.ID {
						notes++
					}
				}
				deckRows = append(deckRows, []string{strconv.FormatInt(d.ID, 10), d.Name, strconv.Itoa(notes)})
			}
			fmt.Fprintln(out, renderTable([]string{"Deck ID", "Deck", "Notes"}, deckRows, []columnAlignment{alignRight, alignLeft, alignRight}))

			for _, m := range contents.Models {
				fmt.Fprintf(out, "Model %d %q: %s\n", m.ID, m.Name, strings.Join(m.Fields, ", "))
			}

			if showNotes && len(contents.Notes) > 0 {
				rows := make([][]string, 0, len(contents.Notes))
				for _, n := range contents.Notes {
					title := ""
					if len(n.Fields) > 1 {
						title = n.Fields[1]
					}
					rows = append(rows, []string{n.GUID, title, strings.Join(n.Tags, " ")})
				}
				fmt.Fprintln(out, renderTable([]string{"GUID", "Title", "Tags"}, rows, []columnAlignment{alignRight}))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showNotes, "notes", false, "List every note")
	return cmd
}
