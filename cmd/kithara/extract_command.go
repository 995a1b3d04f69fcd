package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"kithara/internal/catalog"
	"kithara/internal/extract"
	"kithara/internal/logging"
)

func newExtractCommand(cmdCtx *commandContext) *cobra.Command {
	var includeMusic bool
	var gamePath string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract and catalog audio from the game's soundbanks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(ctx context.Context, store *catalog.Store) error {
				cfg, err := cmdCtx.ensureConfig()
				if err != nil {
					return err
				}
				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("initialize logging: %w", err)
				}

				manager := extract.NewManager(cfg, store, logger)
				if err := manager.Start(ctx, extract.Options{
					GameDir:      gamePath,
					IncludeMusic: includeMusic,
				}); err != nil {
					return err
				}

				sigs := make(chan os.Signal, 1)
				signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
				defer signal.Stop(sigs)
				go func() {
					<-sigs
					fmt.Fprintln(cmd.ErrOrStderr(), "cancelling extraction")
					manager.Cancel()
				}()

				status := watchExtraction(cmd, manager)
				manager.Wait()
				if status.State == extract.StateError {
					return fmt.Errorf("extraction failed: %s", status.Error)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Extraction complete")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&includeMusic, "music", false, "Also extract music tracks")
	cmd.Flags().StringVar(&gamePath, "game-path", "", "Game audio directory (overrides configuration)")
	return cmd
}

// watchExtraction polls the manager until the run finishes, rendering
// progress in place on a terminal and as discrete lines otherwise.
func watchExtraction(cmd *cobra.Command, manager *extract.Manager) extract.Status {
	out := cmd.OutOrStdout()
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	var lastLine string
	for {
		status := manager.Status()
		line := fmt.Sprintf("[%3.0f%%] %s", status.Progress*100, status.CurrentFile)
		if line != lastLine {
			if interactive {
				fmt.Fprintf(out, "\r\033[K%s", line)
			} else {
				fmt.Fprintln(out, line)
			}
			lastLine = line
		}
		if status.State != extract.StateInProgress {
			if interactive {
				fmt.Fprintln(out)
			}
			return status
		}
		time.Sleep(200 * time.Millisecond)
	}
}
