// Package vgmstream wraps the vgmstream-cli decoder, which turns the game's
// proprietary audio blobs into plain WAV files.
package vgmstream

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"kithara/internal/services"
)

// Decode converts a raw extracted blob at source into an uncompressed WAV at
// dest. Fails if the process exits non-zero or the output file is absent
// afterwards.
func Decode(ctx context.Context, binary, source, dest string) error {
	cmd := exec.CommandContext(ctx, binary, "-o", dest, source) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return services.Wrap(services.ErrTool, "vgmstream", "decode", fmt.Sprintf("decode %s", source), err)
	}
	if _, err := os.Stat(dest); err != nil {
		return services.Wrap(services.ErrTool, "vgmstream", "decode", fmt.Sprintf("no output produced at %s", dest), nil)
	}
	return nil
}
