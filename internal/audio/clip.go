package audio

import (
	"glottisdale/internal/syllable"
)

// Clip is an owned audio fragment together with its provenance. Operations
// that change audio return a new Clip; a Clip's Samples are never shared with
// another Clip.
type Clip struct {
	Samples    []float64
	SampleRate int
	Syllables  []syllable.Syllable
	Source     string
	Effects    []Effect
}

// Duration returns the clip length in seconds.
func (c Clip) Duration() float64 {
	return Duration(c.Samples, c.SampleRate)
}

// Clone returns a deep copy of c.
func (c Clip) Clone() Clip {
	return Clip{
		Samples:    append([]float64(nil), c.Samples...),
		SampleRate: c.SampleRate,
		Syllables:  append([]syllable.Syllable(nil), c.Syllables...),
		Source:     c.Source,
		Effects:    append([]Effect(nil), c.Effects...),
	}
}

// Replace returns a copy of c carrying samples and, when effect is non-nil,
// with effect appended to the effect stack.
func (c Clip) Replace(samples []float64, effect *Effect) Clip {
	out := Clip{
		Samples:    samples,
		SampleRate: c.SampleRate,
		Syllables:  append([]syllable.Syllable(nil), c.Syllables...),
		Source:     c.Source,
		Effects:    append([]Effect(nil), c.Effects...),
	}
	if effect != nil {
		out.Effects = append(out.Effects, *effect)
	}
	return out
}

// Span returns the earliest start and latest end over the clip's syllables.
func (c Clip) Span() (start, end float64) {
	for i, syl := range c.Syllables {
		if i == 0 || syl.Start < start {
			start = syl.Start
		}
		if i == 0 || syl.End > end {
			end = syl.End
		}
	}
	return start, end
}

// SyllableCount returns the number of selected syllables in c. A syllable
// directly followed by copies of itself, as stutter leaves it, counts once.
func (c Clip) SyllableCount() int {
	n := 0
	for i, syl := range c.Syllables {
		if i > 0 && sameSyllable(c.Syllables[i-1], syl) {
			continue
		}
		n++
	}
	return n
}

func sameSyllable(a, b syllable.Syllable) bool {
	return a.Source == b.Source && a.WordIndex == b.WordIndex && a.Start == b.Start && a.End == b.End
}

// DominantSource returns the source contributing the most syllables. Ties go
// to the source seen first. Clips without syllables report c.Source.
func (c Clip) DominantSource() string {
	if len(c.Syllables) == 0 {
		return c.Source
	}
	counts := make(map[string]int, 2)
	var order []string
	for _, syl := range c.Syllables {
		if counts[syl.Source] == 0 {
			order = append(order, syl.Source)
		}
		counts[syl.Source]++
	}
	best := order[0]
	for _, src := range order[1:] {
		if counts[src] > counts[best] {
			best = src
		}
	}
	return best
}

// Join concatenates clips with a crossfade of crossfadeSeconds and merges
// their provenance in order. All clips are expected to share a sample rate;
// the first clip's rate wins.
func Join(clips []Clip, crossfadeSeconds float64) Clip {
	if len(clips) == 0 {
		return Clip{}
	}
	sr := clips[0].SampleRate
	parts := make([][]float64, 0, len(clips))
	var out Clip
	out.SampleRate = sr
	for _, c := range clips {
		parts = append(parts, c.Samples)
		out.Syllables = append(out.Syllables, c.Syllables...)
		out.Effects = append(out.Effects, c.Effects...)
	}
	out.Samples = Concatenate(parts, Samples(crossfadeSeconds, sr))
	out.Source = out.DominantSource()
	return out
}
