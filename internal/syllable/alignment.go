package syllable

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"glottisdale/internal/textutil"
)

// AlignmentSuffix is appended to an audio file's stem to find its sidecar.
const AlignmentSuffix = ".alignment.json"

// Word is a timed transcript word. Phonemes are optional; when present they
// carry the word's pronunciation and may be untimed (zero start and end).
type Word struct {
	Word     string    `json:"word"`
	Start    float64   `json:"start"`
	End      float64   `json:"end"`
	Phonemes []Phoneme `json:"phonemes,omitempty"`
}

// Alignment is the sidecar document produced by transcription and alignment.
type Alignment struct {
	Text      string     `json:"text"`
	Words     []Word     `json:"words"`
	Syllables []Syllable `json:"syllables"`
}

// Syllabifier splits a word's phonemes into syllables.
type Syllabifier func(word Word, wordIndex int) []Syllable

// SidecarPath returns the default alignment path for an audio file.
func SidecarPath(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return strings.TrimSuffix(audioPath, ext) + AlignmentSuffix
}

// LoadAlignment reads an alignment sidecar.
func LoadAlignment(path string) (Alignment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Alignment{}, fmt.Errorf("read alignment: %w", err)
	}
	var doc Alignment
	if err := json.Unmarshal(data, &doc); err != nil {
		return Alignment{}, fmt.Errorf("parse alignment %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// Resolve produces the syllable list for source. Explicit syllables win.
// Otherwise each word with phonemes is split by syllabify, and a word with no
// phonemes becomes a single phoneme-less syllable spanning the word. Invalid
// syllables are dropped and reported in the returned skip count.
func (a Alignment) Resolve(source string, syllabify Syllabifier) ([]Syllable, int) {
	var raw []Syllable
	if len(a.Syllables) > 0 {
		raw = append(raw, a.Syllables...)
	} else {
		for i, w := range a.Words {
			if len(w.Phonemes) > 0 && syllabify != nil {
				raw = append(raw, syllabify(w, i)...)
				continue
			}
			raw = append(raw, Syllable{Start: w.Start, End: w.End, Word: w.Word, WordIndex: i})
		}
	}

	out := make([]Syllable, 0, len(raw))
	skipped := 0
	lastWord := -1
	position := 0
	for _, s := range raw {
		if err := s.Validate(); err != nil {
			skipped++
			continue
		}
		if s.WordIndex != lastWord {
			lastWord = s.WordIndex
			position = 0
		}
		s.Index = position
		position++
		s.Word = textutil.NormalizeWord(s.Word)
		s.Source = source
		s.Phonemes = append([]Phoneme(nil), s.Phonemes...)
		out = append(out, s)
	}
	return out, skipped
}
