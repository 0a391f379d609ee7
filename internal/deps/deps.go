// Package deps reports on the external tools a collage run shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"glottisdale/internal/config"
	"glottisdale/internal/services"
)

// Requirement is an external binary named by the configuration.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// Optional tools only matter for some inputs, so a missing one is not
	// fatal.
	Optional bool
}

// Status is a Requirement after lookup on PATH.
type Status struct {
	Requirement
	Available bool
	Path      string
	Detail    string
}

// Requirements lists the external tools cfg relies on. FFmpeg is required
// when it is the stretch primitive and optional otherwise, since only
// non-WAV inputs need it for decoding.
func Requirements(cfg *config.Config) []Requirement {
	ffmpeg := Requirement{
		Name:        "FFmpeg",
		Command:     cfg.Processing.FFmpegBinary,
		Description: "Decodes non-WAV inputs",
		Optional:    true,
	}
	if cfg.Processing.Stretcher == config.StretcherFFmpeg {
		ffmpeg.Description = "Decodes non-WAV inputs and stretches clips"
		ffmpeg.Optional = false
	}
	return []Requirement{ffmpeg}
}

// Check resolves every requirement on PATH, in order.
func Check(requirements []Requirement) []Status {
	results := make([]Status, len(requirements))
	for i, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		results[i] = lookup(req)
	}
	return results
}

func lookup(req Requirement) Status {
	status := Status{Requirement: req}
	if req.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(req.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		return status
	}
	status.Available = true
	status.Path = path
	return status
}

// EnsureRequired returns a configuration error naming every required tool
// that is unavailable. A collage run calls it before touching any input.
func EnsureRequired(statuses []Status) error {
	var missing []string
	for _, s := range statuses {
		if !s.Optional && !s.Available {
			missing = append(missing, fmt.Sprintf("%s (%s)", s.Name, s.Detail))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "deps", "check",
		"missing required tools: "+strings.Join(missing, ", "), nil)
}
