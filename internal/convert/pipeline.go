package convert

import (
	"context"
	"os"
	"strings"

	"kithara/internal/services/ffmpeg"
	"kithara/internal/services/vgmstream"
)

// Pipeline converts one raw extracted blob to the catalog's target codec via
// two external-tool stages. No stage is retried; the caller decides whether
// a failure skips the entry or aborts the run.
type Pipeline struct {
	VgmstreamBinary string
	FFmpegBinary    string
	FFprobeBinary   string
	VorbisQuality   int
}

// Convert decodes the blob at source to an intermediate WAV, then encodes it
// to an Ogg Vorbis file at dest. The intermediate WAV is removed on every
// exit path.
func (p Pipeline) Convert(ctx context.Context, source, dest string) error {
	wav := intermediatePath(source)

	if err := vgmstream.Decode(ctx, p.VgmstreamBinary, source, wav); err != nil {
		os.Remove(wav)
		return err
	}

	err := ffmpeg.EncodeVorbis(ctx, p.FFmpegBinary, wav, dest, p.VorbisQuality)
	os.Remove(wav)
	return err
}

// ProbeDuration returns the duration in seconds of a converted file.
func (p Pipeline) ProbeDuration(ctx context.Context, path string) (float64, error) {
	return ffmpeg.ProbeDuration(ctx, p.FFprobeBinary, path)
}

// intermediatePath swaps the source extension for .wav.
func intermediatePath(source string) string {
	if idx := strings.LastIndex(source, "."); idx > strings.LastIndexAny(source, `/\`) {
		return source[:idx] + ".wav"
	}
	return source + ".wav"
}
