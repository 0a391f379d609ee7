package bank

import (
	"errors"
	"fmt"

	"glottisdale/internal/audio"
	"glottisdale/internal/syllable"
)

// ErrClipTooShort is returned when a cut resolves to no audio.
var ErrClipTooShort = errors.New("clip too short")

// ErrUnknownSource is returned when a syllable names a source the bank does
// not hold.
var ErrUnknownSource = errors.New("unknown source")

// Bank holds the loaded sources in input order.
type Bank struct {
	sources []*Source
	byID    map[string]*Source
}

// New indexes sources by id.
func New(sources []*Source) *Bank {
	b := &Bank{byID: make(map[string]*Source, len(sources))}
	for _, s := range sources {
		if s == nil {
			continue
		}
		b.sources = append(b.sources, s)
		b.byID[s.ID] = s
	}
	return b
}

// Sources returns the sources in input order.
func (b *Bank) Sources() []*Source {
	return b.sources
}

// Source looks up a source by id.
func (b *Bank) Source(id string) (*Source, bool) {
	s, ok := b.byID[id]
	return s, ok
}

// IDs returns the source ids in input order.
func (b *Bank) IDs() []string {
	ids := make([]string, len(b.sources))
	for i, s := range b.sources {
		ids[i] = s.ID
	}
	return ids
}

// Pools returns each source's syllables in input order.
func (b *Bank) Pools() [][]syllable.Syllable {
	pools := make([][]syllable.Syllable, len(b.sources))
	for i, s := range b.sources {
		pools[i] = s.Syllables
	}
	return pools
}

// TotalSyllables counts syllables across all sources.
func (b *Bank) TotalSyllables() int {
	total := 0
	for _, s := range b.sources {
		total += len(s.Syllables)
	}
	return total
}

// SampleRate returns the shared processing rate, or 0 for an empty bank.
func (b *Bank) SampleRate() int {
	if len(b.sources) == 0 {
		return 0
	}
	return b.sources[0].SampleRate
}

// Cut extracts syl from its source, extended by paddingMS on each side and
// clamped to the recording, with half-sine fades of fadeMS. The clip owns its
// samples.
func (b *Bank) Cut(syl syllable.Syllable, paddingMS, fadeMS float64) (audio.Clip, error) {
	src, ok := b.byID[syl.Source]
	if !ok {
		return audio.Clip{}, fmt.Errorf("cut %q: %w", syl.Source, ErrUnknownSource)
	}
	samples, err := audio.Cut(src.Samples, src.SampleRate, syl.Start, syl.End, paddingMS/1000, fadeMS/1000)
	if err != nil {
		return audio.Clip{}, fmt.Errorf("cut %s %.3f-%.3f: %w", syl.Source, syl.Start, syl.End, ErrClipTooShort)
	}
	return audio.Clip{
		Samples:    samples,
		SampleRate: src.SampleRate,
		Syllables:  []syllable.Syllable{syl},
		Source:     syl.Source,
	}, nil
}
