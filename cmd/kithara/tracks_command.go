package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"kithara/internal/catalog"
)

func newTracksCommand(cmdCtx *commandContext) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List extracted music tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(ctx context.Context, store *catalog.Store) error {
				tracks, err := store.Tracks(ctx, query)
				if err != nil {
					return err
				}
				if len(tracks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No music tracks found")
					return nil
				}
				rows := make([][]string, 0, len(tracks))
				for _, t := range tracks {
					rows = append(rows, []string{
						t.ID,
						t.Title,
						formatDuration(t.DurationSeconds),
						t.FilePath,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Title", "Duration", "Path"}, rows, 2))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Filter tracks by title")
	return cmd
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
