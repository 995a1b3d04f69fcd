package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kithara/internal/config"
	"kithara/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	var b strings.Builder
	fmt.Fprintln(&b, "[paths]")
	fmt.Fprintf(&b, "game_dir = %q\n", cfg.Paths.GameDir)
	fmt.Fprintf(&b, "cache_dir = %q\n", cfg.Paths.CacheDir)
	fmt.Fprintf(&b, "log_dir = %q\n", cfg.Paths.LogDir)
	fmt.Fprintln(&b, "[tools]")
	fmt.Fprintf(&b, "vgmstream = %q\n", cfg.Tools.Vgmstream)
	fmt.Fprintf(&b, "ffmpeg = %q\n", cfg.Tools.FFmpeg)
	fmt.Fprintf(&b, "ffprobe = %q\n", cfg.Tools.FFprobe)
	fmt.Fprintln(&b, "[conversion]")
	fmt.Fprintf(&b, "vorbis_quality = %d\n", cfg.Conversion.VorbisQuality)
	fmt.Fprintln(&b, "[extraction]")
	fmt.Fprintf(&b, "include_music = %t\n", cfg.Extraction.IncludeMusic)
	fmt.Fprintln(&b, "[logging]")
	fmt.Fprintln(&b, `format = "console"`)
	fmt.Fprintln(&b, `level = "error"`)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}

// runCLI executes the root command with args against the given config file
// and returns captured stdout.
func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	full := args
	if configPath != "" {
		full = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
