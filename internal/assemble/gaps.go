package assemble

import (
	"glottisdale/internal/audio"
	"glottisdale/internal/config"
	"glottisdale/internal/rng"
)

// GapKind names the pause that follows a phrase.
type GapKind string

// Gap kinds.
const (
	GapNone     GapKind = "none"
	GapPhrase   GapKind = "phrase"
	GapSentence GapKind = "sentence"
)

// Gap is the planned pause after one phrase.
type Gap struct {
	Kind GapKind
	MS   float64
	// Breath is the index of the breath opening the pause, or -1.
	Breath int
}

// HasBreath reports whether the pause opens with a breath.
func (g Gap) HasBreath() bool { return g.Breath >= 0 }

// PauseOptions controls gap planning.
type PauseOptions struct {
	PhrasePauseMS     config.FloatRange
	SentencePauseMS   config.FloatRange
	BreathProbability float64
	// Breaths is the number of breath candidates available.
	Breaths int
}

// PlanGaps returns one gap per phrase. sentences lists how many phrases each
// sentence holds, in order. The last phrase of a sentence gets a sentence
// pause, other phrases a phrase pause, and the final phrase none.
//
// Durations are drawn first, left to right. Breath draws follow in a second
// pass over phrase pauses that have a nonzero duration, and only when
// breaths are available and the probability is positive.
func PlanGaps(sentences []int, opts PauseOptions, stream *rng.Stream) []Gap {
	total := 0
	for _, n := range sentences {
		total += n
	}
	gaps := make([]Gap, 0, total)
	for si, n := range sentences {
		for pi := range n {
			g := Gap{Kind: GapPhrase, Breath: -1}
			switch {
			case si == len(sentences)-1 && pi == n-1:
				g.Kind = GapNone
			case pi == n-1:
				g.Kind = GapSentence
				g.MS = pause(opts.SentencePauseMS, stream)
			default:
				g.MS = pause(opts.PhrasePauseMS, stream)
			}
			gaps = append(gaps, g)
		}
	}

	if opts.Breaths == 0 || opts.BreathProbability <= 0 {
		return gaps
	}
	for i := range gaps {
		if gaps[i].Kind != GapPhrase || gaps[i].MS <= 0 {
			continue
		}
		if stream.Chance(opts.BreathProbability) {
			gaps[i].Breath = stream.IntN(opts.Breaths)
		}
	}
	return gaps
}

func pause(r config.FloatRange, stream *rng.Stream) float64 {
	if r.Fixed() {
		return max(r.Min, 0)
	}
	return max(stream.FloatBetween(r.Min, r.Max), 0)
}

// Filler renders gap audio.
type Filler struct {
	SampleRate int
	// RoomTones cycle across gaps in order. Empty means plain silence.
	RoomTones [][]float64
	Breaths   [][]float64
}

// Render returns the audio for the index'th gap.
func (f Filler) Render(g Gap, index int) []float64 {
	if g.Kind == GapNone || g.MS <= 0 {
		return nil
	}
	samples := audio.Silence(g.MS/1000, f.SampleRate)
	if len(f.RoomTones) > 0 {
		samples = audio.Mix(samples, f.RoomTones[index%len(f.RoomTones)], 0)
	}
	if g.HasBreath() && g.Breath < len(f.Breaths) {
		samples = audio.Concatenate([][]float64{f.Breaths[g.Breath], samples}, audio.Samples(BreathCrossfadeMS/1000, f.SampleRate))
	}
	return samples
}

// Render lays phrases end to end with their gaps. Phrases and gaps are
// joined without a crossfade, so the result is exactly the phrases plus the
// returned per-phrase gap lengths in samples, breaths included. The result
// carries no provenance.
func Render(phrases []audio.Clip, gaps []Gap, filler Filler) (audio.Clip, []int) {
	parts := make([][]float64, 0, 2*len(phrases))
	gapSamples := make([]int, len(phrases))
	for i, p := range phrases {
		parts = append(parts, p.Samples)
		if i < len(gaps) {
			if gap := filler.Render(gaps[i], i); len(gap) > 0 {
				parts = append(parts, gap)
				gapSamples[i] = len(gap)
			}
		}
	}
	return audio.Clip{SampleRate: filler.SampleRate, Samples: audio.Concatenate(parts, 0)}, gapSamples
}
