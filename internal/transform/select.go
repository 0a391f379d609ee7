package transform

import (
	"glottisdale/internal/config"
	"glottisdale/internal/rng"
)

// ResolveFactor returns the stretch factor for one selected unit. Fixed
// ranges consume no draw.
func ResolveFactor(r config.FloatRange, stream *rng.Stream) float64 {
	if r.Fixed() {
		return r.Min
	}
	return stream.FloatBetween(r.Min, r.Max)
}

// ShouldStretch reports whether a syllable is selected by any active
// per-syllable mode. global is the syllable's position across the whole
// selection, local its position inside a word of wordLen syllables. The
// random mode draws whenever it is enabled, so the stream advances the same
// way whichever mode ends up selecting.
func ShouldStretch(cfg config.Stretch, global, local, wordLen int, stream *rng.Stream) bool {
	selected := false
	if cfg.RandomProbability > 0 && stream.Chance(cfg.RandomProbability) {
		selected = true
	}
	if n := cfg.AlternatingEvery; n > 0 && global%n == 0 {
		selected = true
	}
	if n := cfg.BoundaryCount; n > 0 && (local < n || local >= wordLen-n) {
		selected = true
	}
	return selected
}

// selectionPattern evaluates ShouldStretch over words of the given lengths
// and returns the flattened decisions.
func selectionPattern(cfg config.Stretch, wordLens []int, stream *rng.Stream) []bool {
	var out []bool
	global := 0
	for _, n := range wordLens {
		for local := range n {
			out = append(out, ShouldStretch(cfg, global, local, n, stream))
			global++
		}
	}
	return out
}
