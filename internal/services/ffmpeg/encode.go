// Package ffmpeg wraps the ffmpeg and ffprobe binaries for the encode stage
// of the conversion pipeline and for duration probing.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"kithara/internal/services"
)

// EncodeVorbis compresses a WAV file to an Ogg Vorbis file at the given
// quality level (0-10). Fails if the process exits non-zero or the output
// file is absent afterwards.
func EncodeVorbis(ctx context.Context, binary, source, dest string, quality int) error {
	args := []string{
		"-y",
		"-i", source,
		"-c:a", "libvorbis",
		"-q:a", strconv.Itoa(quality),
		"-loglevel", "error",
		dest,
	}
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return services.Wrap(services.ErrTool, "ffmpeg", "encode", fmt.Sprintf("encode %s", source), err)
	}
	if _, err := os.Stat(dest); err != nil {
		return services.Wrap(services.ErrTool, "ffmpeg", "encode", fmt.Sprintf("no output produced at %s", dest), nil)
	}
	return nil
}

// ProbeDuration returns the duration of an audio file in seconds.
func ProbeDuration(ctx context.Context, binary, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		return 0, services.Wrap(services.ErrTool, "ffprobe", "probe", fmt.Sprintf("probe %s", path), err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, services.Wrap(services.ErrTool, "ffprobe", "probe", fmt.Sprintf("unexpected duration output for %s", path), err)
	}
	return seconds, nil
}
