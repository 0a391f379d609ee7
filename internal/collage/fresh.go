package collage

import (
	"context"

	"glottisdale/internal/audio"
	"glottisdale/internal/bank"
	"glottisdale/internal/config"
	"glottisdale/internal/rng"
	"glottisdale/internal/syllable"
)

type syllableKey struct {
	source     string
	word       int
	index      int
	start, end float64
}

func keyOf(s syllable.Syllable) syllableKey {
	return syllableKey{source: s.Source, word: s.WordIndex, index: s.Index, start: s.Start, end: s.End}
}

// freshPool supplies resample-style word repeats from the syllables the
// sampler did not select. The pool is shuffled on first use and consumed
// front to back.
type freshPool struct {
	bank     *bank.Bank
	stream   *rng.Stream
	cfg      config.Collage
	unused   []syllable.Syllable
	shuffled bool
	next     int
}

func newFreshPool(b *bank.Bank, selected []syllable.Syllable, stream *rng.Stream, cfg config.Collage) *freshPool {
	used := make(map[syllableKey]struct{}, len(selected))
	for _, s := range selected {
		used[keyOf(s)] = struct{}{}
	}
	p := &freshPool{bank: b, stream: stream, cfg: cfg}
	for _, pool := range b.Pools() {
		for _, s := range pool {
			if _, ok := used[keyOf(s)]; !ok {
				p.unused = append(p.unused, s)
			}
		}
	}
	return p
}

// FreshWords builds n words of the given syllable count. It returns false,
// leaving the pool untouched, when too few unused syllables remain or a cut
// fails.
func (p *freshPool) FreshWords(_ context.Context, syllables, n int) ([]audio.Clip, bool) {
	need := syllables * n
	if syllables <= 0 || n <= 0 || p.next+need > len(p.unused) {
		return nil, false
	}
	if !p.shuffled {
		rng.Shuffle(p.stream, p.unused)
		p.shuffled = true
	}
	words := make([]audio.Clip, 0, n)
	for w := range n {
		from := p.next + w*syllables
		parts := make([]audio.Clip, 0, syllables)
		for _, s := range p.unused[from : from+syllables] {
			clip, err := p.bank.Cut(s, p.cfg.PaddingMS, p.cfg.FadeMS)
			if err != nil {
				return nil, false
			}
			parts = append(parts, clip)
		}
		words = append(words, audio.Join(parts, p.cfg.SyllableCrossfadeMS/1000))
	}
	p.next += need
	return words, true
}
