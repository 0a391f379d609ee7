package transform

import (
	"context"
	"errors"
	"log/slog"

	"glottisdale/internal/audio"
	"glottisdale/internal/config"
	"glottisdale/internal/logging"
	"glottisdale/internal/rng"
)

// Repeat styles.
const (
	StyleExact    = config.RepeatExact
	StyleResample = config.RepeatResample
)

// WordSource builds fresh words for resample-style repeats. FreshWords
// returns n newly assembled words of the given syllable count, or false when
// the unused pool cannot supply them all. A false return must not consume
// pool material.
type WordSource interface {
	FreshWords(ctx context.Context, syllables, n int) ([]audio.Clip, bool)
}

// Transformer applies effects using one stretch primitive and the run's
// random stream.
type Transformer struct {
	stretcher audio.Stretcher
	stream    *rng.Stream
	logger    *slog.Logger
}

// New returns a Transformer.
func New(stretcher audio.Stretcher, stream *rng.Stream, logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Transformer{
		stretcher: stretcher,
		stream:    stream,
		logger:    logging.NewComponentLogger(logger, "transform"),
	}
}

// Stutter duplicates selected syllables in place inside their word. Each
// syllable draws once against cfg.Probability; a hit draws a count and
// inserts that many copies right after the original, which records a
// Stutter effect.
func (t *Transformer) Stutter(words [][]audio.Clip, cfg config.Stutter) [][]audio.Clip {
	if cfg.Probability <= 0 || cfg.Count.Max <= 0 {
		return words
	}
	out := make([][]audio.Clip, len(words))
	stuttered := 0
	for wi, word := range words {
		next := make([]audio.Clip, 0, len(word))
		for _, clip := range word {
			if !t.stream.Chance(cfg.Probability) {
				next = append(next, clip)
				continue
			}
			n := t.stream.IntBetween(cfg.Count.Min, cfg.Count.Max)
			if n <= 0 {
				next = append(next, clip)
				continue
			}
			effect := audio.Stutter(n)
			marked := clip.Clone()
			marked.Effects = append(marked.Effects, effect)
			t.logger.Debug("syllable stuttered",
				logging.Int("count", n),
				logging.Seconds("planned", audio.EffectiveDuration(clip.Duration(), []audio.Effect{effect})),
			)
			next = append(next, marked)
			for range n {
				next = append(next, clip.Clone())
			}
			stuttered++
		}
		out[wi] = next
	}
	t.logger.Debug("stutter applied", logging.Int("syllables", stuttered))
	return out
}

// StretchSyllables time-stretches syllables chosen by the per-syllable
// selection modes. Selection and factor draws happen for every syllable
// before its length is checked, so decisions do not depend on audio.
func (t *Transformer) StretchSyllables(ctx context.Context, words [][]audio.Clip, cfg config.Stretch) [][]audio.Clip {
	if cfg.RandomProbability <= 0 && cfg.AlternatingEvery <= 0 && cfg.BoundaryCount <= 0 {
		return words
	}
	out := make([][]audio.Clip, len(words))
	global := 0
	stretched := 0
	for wi, word := range words {
		next := make([]audio.Clip, len(word))
		for local, clip := range word {
			next[local] = clip
			if ShouldStretch(cfg, global, local, len(word), t.stream) {
				factor := ResolveFactor(cfg.Factor, t.stream)
				if replaced, ok := t.stretch(ctx, clip, factor, "syllable"); ok {
					next[local] = replaced
					stretched++
				}
			}
			global++
		}
		out[wi] = next
	}
	t.logger.Debug("syllable stretch applied", logging.Int("syllables", stretched))
	return out
}

// StretchWords stretches whole assembled words, each drawing once against
// cfg.WordProbability.
func (t *Transformer) StretchWords(ctx context.Context, words []audio.Clip, cfg config.Stretch) []audio.Clip {
	if cfg.WordProbability <= 0 {
		return words
	}
	out := make([]audio.Clip, len(words))
	for i, w := range words {
		out[i] = w
		if !t.stream.Chance(cfg.WordProbability) {
			continue
		}
		factor := ResolveFactor(cfg.Factor, t.stream)
		if replaced, ok := t.stretch(ctx, w, factor, "word"); ok {
			out[i] = replaced
		}
	}
	return out
}

// RepeatWords repeats selected words right after themselves. The exact style
// inserts copies of the rendered word; the resample style asks fresh for new
// words with the same number of selected syllables (stutter copies count once)
// and falls back to exact copies when it
// cannot supply them.
func (t *Transformer) RepeatWords(ctx context.Context, words []audio.Clip, cfg config.Repeat, fresh WordSource) []audio.Clip {
	if cfg.Probability <= 0 || cfg.Count.Max <= 0 {
		return words
	}
	out := make([]audio.Clip, 0, len(words))
	for _, w := range words {
		if !t.stream.Chance(cfg.Probability) {
			out = append(out, w)
			continue
		}
		n := t.stream.IntBetween(cfg.Count.Min, cfg.Count.Max)
		if n <= 0 {
			out = append(out, w)
			continue
		}

		style := cfg.Style
		var copies []audio.Clip
		if style == StyleResample {
			var ok bool
			syllables := w.SyllableCount()
			if fresh != nil {
				copies, ok = fresh.FreshWords(ctx, syllables, n)
			}
			if !ok {
				t.logger.Debug("resample repeat fell back to exact",
					logging.Int("syllables", syllables),
					logging.Int("count", n),
				)
				style = StyleExact
				copies = nil
			}
		}
		if style != StyleResample {
			copies = make([]audio.Clip, n)
			for i := range copies {
				copies[i] = w.Clone()
			}
		}

		effect := audio.WordRepeat(n, style)
		marked := w.Clone()
		marked.Effects = append(marked.Effects, effect)
		if style == StyleExact {
			t.logger.Debug("word repeated",
				logging.Int("count", n),
				logging.Seconds("planned", audio.EffectiveDuration(w.Duration(), []audio.Effect{effect})),
			)
		}
		out = append(out, marked)
		out = append(out, copies...)
	}
	return out
}

// Speed stretches the final mix by 1/speed. A speed of 0 or 1 is a no-op.
func (t *Transformer) Speed(ctx context.Context, mix audio.Clip, speed float64) audio.Clip {
	if speed <= 0 || speed == 1 {
		return mix
	}
	if replaced, ok := t.stretch(ctx, mix, 1/speed, "mix"); ok {
		return replaced
	}
	return mix
}

func (t *Transformer) stretch(ctx context.Context, clip audio.Clip, factor float64, unit string) (audio.Clip, bool) {
	out, err := audio.ApplyEffects(ctx, clip, t.stretcher, audio.TimeStretch(factor))
	if err == nil {
		return out, true
	}
	if errors.Is(err, audio.ErrTooShort) {
		t.logger.Debug("stretch skipped for short clip",
			logging.String("unit", unit),
			logging.Seconds("duration", clip.Duration()),
		)
		return clip, false
	}
	logging.WarnWithContext(t.logger, "stretch failed", "stretch_failed",
		logging.String("unit", unit),
		logging.Float64("factor", factor),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "try processing.stretcher = \"native\""),
	)
	return clip, false
}
