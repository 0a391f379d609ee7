// Package manifest defines the JSON document written beside every collage.
//
// The contract fields (sources, total_syllables, selected_syllables and the
// clips[] filename, source, word, word_index, start and end keys) are read by
// downstream tooling and must keep their names. Everything else records the
// structural decisions of the run so two runs can be compared.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"glottisdale/internal/audio"
	"glottisdale/internal/config"
	"glottisdale/internal/fileutil"
)

// FileName is the manifest's name inside a run directory.
const FileName = "manifest.json"

// Manifest describes one collage run.
type Manifest struct {
	RunName           string     `json:"run_name,omitempty"`
	Sources           []string   `json:"sources"`
	TotalSyllables    int        `json:"total_syllables"`
	SelectedSyllables int        `json:"selected_syllables"`
	Seed              int64      `json:"seed"`
	Parameters        Parameters `json:"parameters"`
	Duration          float64    `json:"duration"`
	Clips             []Clip     `json:"clips"`
	Phrases           []Phrase   `json:"phrases"`
	RoomToneSources   []string   `json:"room_tone_sources,omitempty"`
	BreathCount       int        `json:"breath_count,omitempty"`
}

// Clip is one rendered word.
type Clip struct {
	Filename  string         `json:"filename"`
	Source    string         `json:"source"`
	Word      string         `json:"word"`
	WordIndex int            `json:"word_index"`
	Start     float64        `json:"start"`
	End       float64        `json:"end"`
	Duration  float64        `json:"duration"`
	Syllables []Syllable     `json:"syllables"`
	Effects   []audio.Effect `json:"effects,omitempty"`
}

// Syllable is the provenance of one syllable inside a clip.
type Syllable struct {
	Source        string  `json:"source"`
	Word          string  `json:"word"`
	WordIndex     int     `json:"word_index"`
	SyllableIndex int     `json:"syllable_index"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
}

// Phrase records which clips form a phrase and the pause after it.
//
// GapAfterMS and GapSamples are the rendered gap after the phrase, breath
// included, at the run sample rate before any global speed change. PauseMS
// is the drawn pause the gap was built from.
type Phrase struct {
	Clips      []int   `json:"clips"`
	Sentence   int     `json:"sentence"`
	GapAfterMS float64 `json:"gap_after_ms"`
	GapSamples int     `json:"gap_samples"`
	PauseMS    float64 `json:"pause_ms"`
	GapType    string  `json:"gap_type"`
	Breath     bool    `json:"breath"`
}

// Parameters is the effective configuration of the run.
type Parameters struct {
	TargetDuration      float64           `json:"target_duration"`
	SyllablesPerWord    config.IntRange   `json:"syllables_per_word"`
	WordsPerPhrase      config.IntRange   `json:"words_per_phrase"`
	PhrasesPerSentence  config.IntRange   `json:"phrases_per_sentence"`
	PaddingMS           float64           `json:"padding_ms"`
	FadeMS              float64           `json:"fade_ms"`
	SyllableCrossfadeMS float64           `json:"syllable_crossfade_ms"`
	WordCrossfadeMS     float64           `json:"word_crossfade_ms"`
	PhrasePauseMS       config.FloatRange `json:"phrase_pause_ms"`
	SentencePauseMS     config.FloatRange `json:"sentence_pause_ms"`
	OrderingAttempts    int               `json:"ordering_attempts"`
	Stretch             config.Stretch    `json:"stretch"`
	Stutter             config.Stutter    `json:"stutter"`
	Repeat              config.Repeat     `json:"repeat"`
	Polish              config.Polish     `json:"polish"`
	SampleRate          int               `json:"sample_rate"`
	Stretcher           string            `json:"stretcher"`
}

// NewParameters captures the parts of cfg that shape the output.
func NewParameters(cfg *config.Config) Parameters {
	c := cfg.Collage
	return Parameters{
		TargetDuration:      c.TargetDuration,
		SyllablesPerWord:    c.SyllablesPerWord,
		WordsPerPhrase:      c.WordsPerPhrase,
		PhrasesPerSentence:  c.PhrasesPerSentence,
		PaddingMS:           c.PaddingMS,
		FadeMS:              c.FadeMS,
		SyllableCrossfadeMS: c.SyllableCrossfadeMS,
		WordCrossfadeMS:     c.WordCrossfadeMS,
		PhrasePauseMS:       c.PhrasePauseMS,
		SentencePauseMS:     c.SentencePauseMS,
		OrderingAttempts:    c.OrderingAttempts,
		Stretch:             cfg.Stretch,
		Stutter:             cfg.Stutter,
		Repeat:              cfg.Repeat,
		Polish:              cfg.Polish,
		SampleRate:          cfg.Processing.SampleRate,
		Stretcher:           cfg.Processing.Stretcher,
	}
}

// NewClip builds the record for a rendered word clip. Word and word index
// come from the clip's first syllable; start and end span all of them.
func NewClip(filename string, clip audio.Clip) Clip {
	rec := Clip{
		Filename: filename,
		Source:   clip.DominantSource(),
		Duration: clip.Duration(),
		Effects:  clip.Effects,
	}
	if len(clip.Syllables) > 0 {
		rec.Word = clip.Syllables[0].Word
		rec.WordIndex = clip.Syllables[0].WordIndex
		rec.Start, rec.End = clip.Span()
	}
	rec.Syllables = make([]Syllable, 0, len(clip.Syllables))
	for _, s := range clip.Syllables {
		rec.Syllables = append(rec.Syllables, Syllable{
			Source:        s.Source,
			Word:          s.Word,
			WordIndex:     s.WordIndex,
			SyllableIndex: s.Index,
			Start:         s.Start,
			End:           s.End,
		})
	}
	return rec
}

// Write stores m as path atomically.
func Write(path string, m Manifest) error {
	return fileutil.WriteJSON(path, m)
}

// Read loads a manifest from path.
func Read(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return m, nil
}
