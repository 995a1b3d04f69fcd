package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"kithara/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.GameDir = filepath.Join(base, "game")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfg,
	}
	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithIncludeMusic opts the test config into music extraction.
func WithIncludeMusic() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extraction.IncludeMusic = true
	}
}

// WithStubbedBinaries points the tool paths at shell-script stand-ins: the
// decoder and encoder copy their input to their output path, the prober
// prints a fixed duration. Good enough to drive the conversion pipeline
// without the real tools installed.
func WithStubbedBinaries() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		stubs := map[string]string{
			// Invoked as: vgmstream-cli -o DEST SRC
			"vgmstream-cli": "#!/bin/sh\ncp \"$3\" \"$2\"\n",
			// Invoked as: ffmpeg -y -i SRC ... DEST
			"ffmpeg":  "#!/bin/sh\nfor last in \"$@\"; do :; done\ncp \"$3\" \"$last\"\n",
			"ffprobe": "#!/bin/sh\necho 2.5\n",
		}
		for name, script := range stubs {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.cfg.Tools.Vgmstream = filepath.Join(binDir, "vgmstream-cli")
		b.cfg.Tools.FFmpeg = filepath.Join(binDir, "ffmpeg")
		b.cfg.Tools.FFprobe = filepath.Join(binDir, "ffprobe")
	}
}

// WithFailingBinaries points the tool paths at stubs that always exit
// non-zero, for exercising tool-failure paths.
func WithFailingBinaries() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\necho boom >&2\nexit 1\n")
		for _, name := range []string{"vgmstream-cli", "ffmpeg", "ffprobe"} {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.cfg.Tools.Vgmstream = filepath.Join(binDir, "vgmstream-cli")
		b.cfg.Tools.FFmpeg = filepath.Join(binDir, "ffmpeg")
		b.cfg.Tools.FFprobe = filepath.Join(binDir, "ffprobe")
	}
}
