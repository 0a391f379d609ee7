package phonotactics

import (
	"glottisdale/internal/rng"
	"glottisdale/internal/syllable"
)

// Junction scoring weights. They are heuristics tuned by ear.
const (
	// IllegalOnsetPenalty applies when the second syllable opens with a
	// phoneme English never puts at a syllable start.
	IllegalOnsetPenalty = -2
	// HiatusPenalty applies to vowel-vowel junctions, which smear together.
	HiatusPenalty = -1
	// ConsonantalSum is the boundary sonority at or below which both sides
	// are consonants and the cut reads as a clean coda-onset contour.
	ConsonantalSum   = 8
	ConsonantalBonus = 1
	// SonorousSum is the boundary sonority at or above which two highly
	// sonorous segments collide.
	SonorousSum     = 12
	SonorousPenalty = -1
)

// DefaultOrderingAttempts is the number of permutations tried per word.
const DefaultOrderingAttempts = 5

// ScoreJunction scores the transition from a's last phoneme into b's first.
// Higher is more natural. Syllables without phonemes score 0.
func ScoreJunction(a, b syllable.Syllable) int {
	last, first := a.LastLabel(), b.FirstLabel()
	if len(a.Phonemes) == 0 || len(b.Phonemes) == 0 {
		return 0
	}
	score := 0
	if IsIllegalOnset(first) {
		score += IllegalOnsetPenalty
	}
	left, right := Sonority(last), Sonority(first)
	if left == SonorityVowel && right == SonorityVowel {
		score += HiatusPenalty
	}
	switch sum := left + right; {
	case sum <= ConsonantalSum:
		score += ConsonantalBonus
	case sum >= SonorousSum:
		score += SonorousPenalty
	}
	return score
}

// ScoreSequence sums ScoreJunction over adjacent pairs.
func ScoreSequence(syllables []syllable.Syllable) int {
	total := 0
	for i := 1; i < len(syllables); i++ {
		total += ScoreJunction(syllables[i-1], syllables[i])
	}
	return total
}

// OrderSyllables tries attempts random permutations drawn from stream and
// returns the best-scoring one. The first permutation wins ties. Inputs of
// length one or less come back unchanged and consume no draws.
//
// This is a local search sized for word-length inputs; it is not meant to
// find the global optimum over long sequences.
func OrderSyllables(syllables []syllable.Syllable, stream *rng.Stream, attempts int) []syllable.Syllable {
	if len(syllables) <= 1 {
		return append([]syllable.Syllable(nil), syllables...)
	}
	attempts = max(attempts, 1)
	var best []syllable.Syllable
	bestScore := 0
	for i := range attempts {
		candidate := append([]syllable.Syllable(nil), syllables...)
		rng.Shuffle(stream, candidate)
		score := ScoreSequence(candidate)
		if i == 0 || score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best
}
