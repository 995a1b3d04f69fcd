package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"kithara/internal/config"
)

// Requirement defines an external binary Kithara relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Requirements derives the external tool list from configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "vgmstream", Command: cfg.Tools.Vgmstream, Description: "Decodes the game's proprietary audio format"},
		{Name: "FFmpeg", Command: cfg.Tools.FFmpeg, Description: "Encodes extracted audio to Ogg Vorbis"},
		{Name: "FFprobe", Command: cfg.Tools.FFprobe, Description: "Reads track durations from converted audio"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
