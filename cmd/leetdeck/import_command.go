package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"leetdeck/internal/config"
	"leetdeck/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.json",
		Short: "Load problem records from a JSON array into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve import path: %w", err)
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			return ctx.withStore(cmd.Context(), func(s *store.Store) error {
				count, err := s.ImportJSON(cmd.Context(), file)
				if err != nil {
					return err
				}
				total, err := s.Count(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d problems into %s (%d stored)\n", count, s.Path(), total)
				return nil
			})
		},
	}
}
