package polish

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"glottisdale/internal/audio"
	"glottisdale/internal/logging"
)

// Normalization limits.
const (
	// MinPitchShift is the smallest correction worth running the pitch
	// primitive for, in semitones.
	MinPitchShift = 0.1
	// MaxVolumeAdjustDB bounds a single clip's gain change.
	MaxVolumeAdjustDB = 20.0
	// MinVolumeAdjustDB is the smallest gain change applied.
	MinVolumeAdjustDB = 0.5
)

// Engine runs the polish stages that need the stretch primitive or worker
// parallelism.
type Engine struct {
	stretcher audio.Stretcher
	workers   int
	logger    *slog.Logger
}

// NewEngine returns an Engine using workers goroutines for analysis.
func NewEngine(stretcher audio.Stretcher, workers int, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		stretcher: stretcher,
		workers:   max(workers, 1),
		logger:    logging.NewComponentLogger(logger, "polish"),
	}
}

// NormalizePitch shifts every voiced clip toward the median F0 of the voiced
// clips, limited to ±maxShift semitones. Unvoiced clips and clips the
// primitive rejects are returned unchanged. F0 estimation and shifting run
// in parallel; the result keeps input order.
func (e *Engine) NormalizePitch(ctx context.Context, clips []audio.Clip, maxShift float64) ([]audio.Clip, error) {
	f0 := make([]float64, len(clips))
	voiced := make([]bool, len(clips))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range clips {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f0[i], voiced[i] = EstimateF0(clips[i].Samples, clips[i].SampleRate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var estimates []float64
	for i, ok := range voiced {
		if ok {
			estimates = append(estimates, f0[i])
		}
	}
	out := make([]audio.Clip, len(clips))
	copy(out, clips)
	if len(estimates) == 0 {
		e.logger.Info("pitch normalization skipped", logging.Args(
			logging.DecisionAttrs("pitch_normalize", "skipped", "no voiced clips")...)...)
		return out, nil
	}
	target := median(estimates)
	e.logger.Info("pitch normalization target",
		logging.Float64("target_f0_hz", target),
		logging.Int("voiced", len(estimates)),
		logging.Int("clips", len(clips)),
	)

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range clips {
		if !voiced[i] {
			continue
		}
		shift := PitchCorrection(f0[i], target, maxShift)
		if math.Abs(shift) < MinPitchShift {
			continue
		}
		g.Go(func() error {
			shifted, err := audio.ApplyEffects(gctx, clips[i], e.stretcher, audio.PitchShift(shift))
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				e.logger.Debug("pitch shift skipped",
					logging.Int("clip", i),
					logging.Float64("semitones", shift),
					logging.Error(err),
				)
				return nil
			}
			out[i] = shifted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// PitchCorrection converts the ratio of target to f0 into semitones, clamped
// to ±maxShift.
func PitchCorrection(f0, target, maxShift float64) float64 {
	if f0 <= 0 || target <= 0 {
		return 0
	}
	shift := 12 * math.Log2(target/f0)
	return math.Max(-maxShift, math.Min(maxShift, shift))
}

// NormalizeVolume scales every clip toward the median RMS of the non-silent
// clips. Gain is clamped to ±MaxVolumeAdjustDB and changes under
// MinVolumeAdjustDB are skipped.
func NormalizeVolume(clips []audio.Clip) []audio.Clip {
	out := make([]audio.Clip, len(clips))
	copy(out, clips)

	levels := make([]float64, len(clips))
	var loud []float64
	for i, c := range clips {
		levels[i] = audio.RMS(c.Samples)
		if levels[i] > silenceRMS {
			loud = append(loud, levels[i])
		}
	}
	if len(loud) == 0 {
		return out
	}
	target := median(loud)
	for i, c := range clips {
		if levels[i] <= silenceRMS {
			continue
		}
		db := 20 * math.Log10(target/levels[i])
		db = math.Max(-MaxVolumeAdjustDB, math.Min(MaxVolumeAdjustDB, db))
		if math.Abs(db) < MinVolumeAdjustDB {
			continue
		}
		out[i] = c.Replace(audio.Gain(c.Samples, db), nil)
	}
	return out
}
