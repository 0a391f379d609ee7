package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"glottisdale/internal/audio"
	"glottisdale/internal/services"
)

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// Service runs ffmpeg. It satisfies audio.Stretcher.
type Service struct {
	binary        string
	timeout       time.Duration
	commandRunner Runner
}

// NewService creates a service that invokes binary. A zero timeout disables
// the per-command deadline.
func NewService(binary string, timeout time.Duration) *Service {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &Service{binary: binary, timeout: timeout}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner Runner) {
	s.commandRunner = runner
}

// Binary returns the configured ffmpeg command.
func (s *Service) Binary() string {
	return s.binary
}

// Decode converts source into a mono PCM WAV at dest. A sampleRate of zero
// keeps the source rate.
func (s *Service) Decode(ctx context.Context, source, dest string, sampleRate int) error {
	if strings.TrimSpace(source) == "" {
		return services.Wrap(services.ErrValidation, "ffmpeg", "decode", "source path required", nil)
	}
	if err := s.run(ctx, buildDecodeArgs(source, dest, sampleRate)...); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "decode", filepath.Base(source), err)
	}
	return nil
}

// TimeStretch implements audio.Stretcher with the atempo filter.
func (s *Service) TimeStretch(ctx context.Context, samples []float64, sr int, factor float64) ([]float64, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("time stretch: invalid factor %v", factor)
	}
	if audio.Duration(samples, sr) < audio.MinStretchSeconds {
		return nil, audio.ErrTooShort
	}
	return s.filter(ctx, samples, sr, stretchFilter(factor))
}

// PitchShift implements audio.Stretcher by resampling then restoring tempo.
// The result is trimmed or padded to the input length.
func (s *Service) PitchShift(ctx context.Context, samples []float64, sr int, semitones float64) ([]float64, error) {
	if semitones == 0 {
		return append([]float64(nil), samples...), nil
	}
	if audio.Duration(samples, sr) < audio.MinStretchSeconds {
		return nil, audio.ErrTooShort
	}
	out, err := s.filter(ctx, samples, sr, pitchFilter(sr, semitones))
	if err != nil {
		return nil, err
	}
	fitted := make([]float64, len(samples))
	copy(fitted, out)
	return fitted, nil
}

func (s *Service) filter(ctx context.Context, samples []float64, sr int, filter string) ([]float64, error) {
	workDir, err := os.MkdirTemp("", "glottisdale-ffmpeg-")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg: create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	in := filepath.Join(workDir, "in.wav")
	out := filepath.Join(workDir, "out.wav")
	if err := audio.WriteWAV(in, samples, sr); err != nil {
		return nil, err
	}
	if err := s.run(ctx, buildFilterArgs(in, out, filter, sr)...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ffmpeg", "filter", filter, err)
	}
	result, _, err := audio.ReadWAV(out)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ffmpeg", "read filter output", filter, err)
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, args ...string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	var err error
	if s.commandRunner != nil {
		err = s.commandRunner(ctx, s.binary, args...)
	} else {
		cmd := exec.CommandContext(ctx, s.binary, args...) //nolint:gosec
		if output, runErr := cmd.CombinedOutput(); runErr != nil {
			err = fmt.Errorf("%s: %w: %s", s.binary, runErr, strings.TrimSpace(string(output)))
		}
	}
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, "ffmpeg", "run", fmt.Sprintf("exceeded %s", s.timeout), err)
	}
	return err
}
