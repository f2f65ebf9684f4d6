package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/uvpkg/internal/history"
)

// createHistoryCommand creates the history command
func createHistoryCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List packages created with uvpkg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return fmt.Errorf("failed to get limit flag: %w", err)
			}

			db, err := env.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			entries, err := db.List(cmd.Context(), limit)
			if err != nil {
				return err //nolint:wrapcheck // history errors are wrapped
			}

			renderHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of entries (0 for all)")
	return cmd
}

func renderHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No packages created yet")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Package", "Directory", "Created"})

	for _, entry := range entries {
		t.AppendRow(table.Row{
			entry.ID,
			entry.PackageName,
			entry.ProgrammingDir,
			entry.CreatedAt.Local().Format(time.DateTime),
		})
	}

	t.Render()
}
