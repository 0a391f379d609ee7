package audio

import (
	"context"
	"fmt"
)

// EffectKind tags the variant an Effect holds.
type EffectKind string

const (
	EffectStutter     EffectKind = "stutter"
	EffectTimeStretch EffectKind = "time_stretch"
	EffectPitchShift  EffectKind = "pitch_shift"
	EffectWordRepeat  EffectKind = "word_repeat"
)

// Effect is one transform applied to a clip. Only the fields of its Kind are
// meaningful.
type Effect struct {
	Kind      EffectKind `json:"type"`
	Count     int        `json:"count,omitempty"`
	Factor    float64    `json:"factor,omitempty"`
	Semitones float64    `json:"semitones,omitempty"`
	Style     string     `json:"style,omitempty"`
}

// Stutter repeats the clip count extra times.
func Stutter(count int) Effect { return Effect{Kind: EffectStutter, Count: count} }

// TimeStretch scales duration by factor without changing pitch.
func TimeStretch(factor float64) Effect { return Effect{Kind: EffectTimeStretch, Factor: factor} }

// PitchShift moves pitch by semitones without changing duration.
func PitchShift(semitones float64) Effect {
	return Effect{Kind: EffectPitchShift, Semitones: semitones}
}

// WordRepeat repeats a rendered word count extra times using style.
func WordRepeat(count int, style string) Effect {
	return Effect{Kind: EffectWordRepeat, Count: count, Style: style}
}

// DurationFactor is the multiplier this effect applies to a clip's duration.
func (e Effect) DurationFactor() float64 {
	switch e.Kind {
	case EffectStutter, EffectWordRepeat:
		return float64(1 + max(e.Count, 0))
	case EffectTimeStretch:
		return e.Factor
	default:
		return 1
	}
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectStutter:
		return fmt.Sprintf("stutter(x%d)", e.Count)
	case EffectTimeStretch:
		return fmt.Sprintf("stretch(%.3g)", e.Factor)
	case EffectPitchShift:
		return fmt.Sprintf("pitch(%+.2fst)", e.Semitones)
	case EffectWordRepeat:
		return fmt.Sprintf("repeat(x%d,%s)", e.Count, e.Style)
	default:
		return string(e.Kind)
	}
}

// EffectiveDuration computes the duration of a clip of base seconds after
// effects, without touching audio. Factors multiply left to right.
func EffectiveDuration(base float64, effects []Effect) float64 {
	d := base
	for _, e := range effects {
		d *= e.DurationFactor()
	}
	return d
}

// ApplyEffects renders effects onto clip in order and returns a new clip with
// the effects appended to its stack. The input clip is not modified. Repeat
// effects join copies back to back so the rendered length tracks
// EffectiveDuration.
func ApplyEffects(ctx context.Context, clip Clip, stretcher Stretcher, effects ...Effect) (Clip, error) {
	out := clip.Clone()
	for _, e := range effects {
		var (
			samples []float64
			err     error
		)
		switch e.Kind {
		case EffectStutter, EffectWordRepeat:
			parts := make([][]float64, 0, 1+e.Count)
			for range 1 + max(e.Count, 0) {
				parts = append(parts, out.Samples)
			}
			samples = Concatenate(parts, 0)
		case EffectTimeStretch:
			samples, err = stretcher.TimeStretch(ctx, out.Samples, out.SampleRate, e.Factor)
		case EffectPitchShift:
			samples, err = stretcher.PitchShift(ctx, out.Samples, out.SampleRate, e.Semitones)
		default:
			err = fmt.Errorf("unknown effect %q", e.Kind)
		}
		if err != nil {
			return clip, fmt.Errorf("apply %s: %w", e, err)
		}
		out = out.Replace(samples, &e)
	}
	return out, nil
}
