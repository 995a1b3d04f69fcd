package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kithara/internal/catalog"
)

func newClearCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all extracted audio and reset the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(ctx context.Context, store *catalog.Store) error {
				cfg, err := cmdCtx.ensureConfig()
				if err != nil {
					return err
				}
				if err := store.Clear(ctx); err != nil {
					return err
				}
				if err := os.RemoveAll(cfg.SoundsDir()); err != nil {
					return fmt.Errorf("remove extracted audio: %w", err)
				}
				if err := os.RemoveAll(cfg.StagingDir()); err != nil {
					return fmt.Errorf("remove staging files: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog cleared")
				return nil
			})
		},
	}
}
