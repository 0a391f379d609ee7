package syllable

import (
	"errors"
	"fmt"
	"math"
)

// timingTolerance absorbs rounding in aligner output when checking that a
// syllable's bounds match its phonemes.
const timingTolerance = 1e-6

// Phoneme is a single phonetic segment. Times are seconds relative to the
// source audio.
type Phoneme struct {
	Label string  `json:"label"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Syllable groups the phonemes of one syllable inside a word.
type Syllable struct {
	Phonemes  []Phoneme `json:"phonemes"`
	Start     float64   `json:"start"`
	End       float64   `json:"end"`
	Word      string    `json:"word"`
	WordIndex int       `json:"word_index"`
	// Index is the position of the syllable within its word.
	Index  int    `json:"syllable_index"`
	Source string `json:"source,omitempty"`
}

// Duration returns the syllable length in seconds.
func (s Syllable) Duration() float64 {
	return s.End - s.Start
}

// FirstLabel returns the label of the first phoneme, or "" when there are none.
func (s Syllable) FirstLabel() string {
	if len(s.Phonemes) == 0 {
		return ""
	}
	return s.Phonemes[0].Label
}

// LastLabel returns the label of the last phoneme, or "" when there are none.
func (s Syllable) LastLabel() string {
	if len(s.Phonemes) == 0 {
		return ""
	}
	return s.Phonemes[len(s.Phonemes)-1].Label
}

var (
	ErrEmptyRange     = errors.New("syllable has non-positive duration")
	ErrPhonemeBounds  = errors.New("syllable bounds do not match its phonemes")
	ErrNegativeOffset = errors.New("syllable starts before the audio")
)

// Validate checks the timing invariants of a syllable.
func (s Syllable) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("%w: start %.4f", ErrNegativeOffset, s.Start)
	}
	if s.End <= s.Start {
		return fmt.Errorf("%w: %.4f-%.4f", ErrEmptyRange, s.Start, s.End)
	}
	if len(s.Phonemes) == 0 {
		return nil
	}
	first := s.Phonemes[0].Start
	last := s.Phonemes[len(s.Phonemes)-1].End
	if math.Abs(first-s.Start) > timingTolerance || math.Abs(last-s.End) > timingTolerance {
		return fmt.Errorf("%w: %.4f-%.4f vs phonemes %.4f-%.4f", ErrPhonemeBounds, s.Start, s.End, first, last)
	}
	return nil
}

// TotalDuration sums syllable durations.
func TotalDuration(syllables []Syllable) float64 {
	total := 0.0
	for _, s := range syllables {
		total += s.Duration()
	}
	return total
}
