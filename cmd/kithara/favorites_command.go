package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"kithara/internal/catalog"
)

func newFavoritesCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite sounds",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorite sounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(ctx context.Context, store *catalog.Store) error {
				sounds, err := store.Favorites(ctx)
				if err != nil {
					return err
				}
				if len(sounds) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSoundTable(sounds))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle SOUND_ID",
		Short: "Toggle a sound's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(ctx context.Context, store *catalog.Store) error {
				favorite, err := store.ToggleFavorite(ctx, args[0])
				if err != nil {
					return err
				}
				if favorite {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", args[0])
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Show the number of favorite sounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(ctx context.Context, store *catalog.Store) error {
				count, err := store.CountFavorites(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			})
		},
	})

	return cmd
}
