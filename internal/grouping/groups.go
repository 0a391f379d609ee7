package grouping

import (
	"glottisdale/internal/config"
	"glottisdale/internal/phonotactics"
	"glottisdale/internal/rng"
	"glottisdale/internal/syllable"
)

// WordLengthWeights skews word lengths toward two syllables, as in natural
// English speech. They apply to the first len(weights) lengths of a range no
// wider than the table; wider ranges are drawn uniformly.
var WordLengthWeights = []float64{0.30, 0.35, 0.25, 0.10}

// WordLength draws a syllable count for the next word.
func WordLength(r config.IntRange, stream *rng.Stream) int {
	choices := r.Max - r.Min + 1
	if choices <= 1 {
		return max(r.Min, 1)
	}
	if choices <= len(WordLengthWeights) {
		return r.Min + stream.Weighted(WordLengthWeights[:choices])
	}
	return stream.IntBetween(r.Min, r.Max)
}

// GroupWords partitions syllables into words. Multi-syllable words are
// reordered with phonotactics.OrderSyllables using attempts permutations.
// Concatenating the words, ignoring order inside each word, reproduces the
// input exactly.
func GroupWords(syllables []syllable.Syllable, r config.IntRange, stream *rng.Stream, attempts int) [][]syllable.Syllable {
	var words [][]syllable.Syllable
	for i := 0; i < len(syllables); {
		n := WordLength(r, stream)
		end := min(i+max(n, 1), len(syllables))
		word := syllables[i:end:end]
		if len(word) > 1 {
			word = phonotactics.OrderSyllables(word, stream, attempts)
		} else {
			word = append([]syllable.Syllable(nil), word...)
		}
		words = append(words, word)
		i = end
	}
	return words
}

// GroupChunks partitions items into consecutive groups whose sizes are drawn
// uniformly from r. Order is preserved.
func GroupChunks[T any](items []T, r config.IntRange, stream *rng.Stream) [][]T {
	var groups [][]T
	for i := 0; i < len(items); {
		n := max(r.Min, 1)
		if r.Max > r.Min {
			n = stream.IntBetween(max(r.Min, 1), r.Max)
		}
		end := min(i+n, len(items))
		groups = append(groups, items[i:end:end])
		i = end
	}
	return groups
}
