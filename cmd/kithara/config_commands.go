package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kithara/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage Kithara configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var force bool
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := targetPath
			if path == "" {
				var err error
				path, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}
			if !force {
				if _, statErr := os.Stat(path); statErr == nil {
					return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", path)
				} else if !errors.Is(statErr, os.ErrNotExist) {
					return statErr
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVar(&targetPath, "path", "", "Write the sample to this path instead of the default location")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Show the active configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if root := cmd.Root(); root != nil {
				if f := root.PersistentFlags().Lookup("config"); f != nil {
					path = f.Value.String()
				}
			}
			cfg, source, isDefault, err := config.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if isDefault {
				fmt.Fprintln(out, "Using built-in defaults (no configuration file found)")
			} else {
				fmt.Fprintf(out, "Configuration loaded from %s\n", source)
			}
			fmt.Fprintf(out, "Game directory:  %s\n", cfg.Paths.GameDir)
			fmt.Fprintf(out, "Cache directory: %s\n", cfg.Paths.CacheDir)
			fmt.Fprintf(out, "Log directory:   %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "Database:        %s\n", cfg.DatabasePath())
			fmt.Fprintf(out, "Sounds:          %s\n", cfg.SoundsDir())
			fmt.Fprintf(out, "vgmstream:       %s\n", cfg.Tools.Vgmstream)
			fmt.Fprintf(out, "ffmpeg:          %s\n", cfg.Tools.FFmpeg)
			fmt.Fprintf(out, "ffprobe:         %s\n", cfg.Tools.FFprobe)
			fmt.Fprintf(out, "Vorbis quality:  %d\n", cfg.Conversion.VorbisQuality)
			fmt.Fprintf(out, "Include music:   %s\n", yesNo(cfg.Extraction.IncludeMusic))
			return nil
		},
	}
}
