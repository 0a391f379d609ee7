package transform

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"glottisdale/internal/audio"
	"glottisdale/internal/config"
	"glottisdale/internal/rng"
	"glottisdale/internal/syllable"
)

const sr = 16000

func clip(seconds float64, word int) audio.Clip {
	n := audio.Samples(seconds, sr)
	s := make([]float64, n)
	for i := range s {
		s[i] = 0.2 * math.Sin(2*math.Pi*150*float64(i)/sr)
	}
	return audio.Clip{
		Samples:    s,
		SampleRate: sr,
		Source:     "a",
		Syllables:  []syllable.Syllable{{Source: "a", WordIndex: word, Start: 0, End: seconds}},
	}
}

func TestSelectionPatterns(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Stretch
		wordLens []int
		want     []bool
	}{
		{
			name:     "alternating every 2",
			cfg:      config.Stretch{AlternatingEvery: 2},
			wordLens: []int{6},
			want:     []bool{true, false, true, false, true, false},
		},
		{
			name:     "alternating spans words",
			cfg:      config.Stretch{AlternatingEvery: 2},
			wordLens: []int{3, 3},
			want:     []bool{true, false, true, false, true, false},
		},
		{
			name:     "boundary 1",
			cfg:      config.Stretch{BoundaryCount: 1},
			wordLens: []int{4},
			want:     []bool{true, false, false, true},
		},
		{
			name:     "union",
			cfg:      config.Stretch{AlternatingEvery: 3, BoundaryCount: 1},
			wordLens: []int{4},
			want:     []bool{true, false, false, true},
		},
		{
			name:     "union adds interior",
			cfg:      config.Stretch{AlternatingEvery: 2, BoundaryCount: 1},
			wordLens: []int{5},
			want:     []bool{true, false, true, false, true},
		},
		{
			name:     "none active",
			cfg:      config.Stretch{},
			wordLens: []int{3},
			want:     []bool{false, false, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectionPattern(tt.cfg, tt.wordLens, rng.New(1))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("pattern = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRandomSelectionExtremes(t *testing.T) {
	all := selectionPattern(config.Stretch{RandomProbability: 1}, []int{5}, rng.New(2))
	for i, v := range all {
		if !v {
			t.Fatalf("probability 1 skipped syllable %d", i)
		}
	}
}

func TestResolveFactor(t *testing.T) {
	stream := rng.New(1)
	ref := rng.New(1)
	if got := ResolveFactor(config.FloatRange{Min: 2, Max: 2}, stream); got != 2 {
		t.Fatalf("fixed factor = %v", got)
	}
	if stream.Uint64() != ref.Uint64() {
		t.Fatal("fixed factor consumed a draw")
	}
	for range 100 {
		f := ResolveFactor(config.FloatRange{Min: 1.5, Max: 3}, stream)
		if f < 1.5 || f > 3 {
			t.Fatalf("factor %v out of range", f)
		}
	}
}

func TestStutterInsertsCopiesAfterOriginal(t *testing.T) {
	tr := New(audio.NativeStretcher{}, rng.New(3), nil)
	words := [][]audio.Clip{{clip(0.1, 0), clip(0.12, 0)}, {clip(0.1, 1)}}
	out := tr.Stutter(words, config.Stutter{Probability: 1, Count: config.IntRange{Min: 2, Max: 2}})
	if len(out[0]) != 6 || len(out[1]) != 3 {
		t.Fatalf("lengths = %d, %d", len(out[0]), len(out[1]))
	}
	if len(out[0][0].Effects) != 1 || out[0][0].Effects[0] != audio.Stutter(2) {
		t.Fatalf("original effects = %v", out[0][0].Effects)
	}
	if len(out[0][1].Samples) != len(words[0][0].Samples) || len(out[0][3].Samples) != len(words[0][1].Samples) {
		t.Fatal("copies not placed after their original")
	}
	out[0][1].Samples[0] = 42
	if words[0][0].Samples[0] == 42 {
		t.Fatal("stutter copy aliases the original")
	}
}

func TestStutterDisabledConsumesNothing(t *testing.T) {
	stream := rng.New(3)
	ref := rng.New(3)
	tr := New(audio.NativeStretcher{}, stream, nil)
	words := [][]audio.Clip{{clip(0.1, 0)}}
	out := tr.Stutter(words, config.Stutter{Probability: 0, Count: config.IntRange{Min: 1, Max: 2}})
	if len(out[0]) != 1 || stream.Uint64() != ref.Uint64() {
		t.Fatal("disabled stutter changed output or consumed draws")
	}
}

func TestStretchSyllablesSkipsShortClips(t *testing.T) {
	tr := New(audio.NativeStretcher{}, rng.New(4), nil)
	words := [][]audio.Clip{{clip(0.2, 0), clip(0.05, 0)}}
	cfg := config.Stretch{BoundaryCount: 1, Factor: config.FloatRange{Min: 2, Max: 2}}
	out := tr.StretchSyllables(context.Background(), words, cfg)
	if got, want := len(out[0][0].Samples), 2*len(words[0][0].Samples); got != want {
		t.Fatalf("stretched len = %d, want %d", got, want)
	}
	if len(out[0][1].Samples) != len(words[0][1].Samples) || len(out[0][1].Effects) != 0 {
		t.Fatal("short clip should be left unmodified")
	}
	if out[0][0].Effects[0].Kind != audio.EffectTimeStretch {
		t.Fatalf("effects = %v", out[0][0].Effects)
	}
}

type failingStretcher struct{ audio.NativeStretcher }

func (failingStretcher) TimeStretch(context.Context, []float64, int, float64) ([]float64, error) {
	return nil, errors.New("primitive exploded")
}

func TestStretchFailureLeavesClip(t *testing.T) {
	tr := New(failingStretcher{}, rng.New(4), nil)
	words := []audio.Clip{clip(0.3, 0)}
	out := tr.StretchWords(context.Background(), words, config.Stretch{WordProbability: 1, Factor: config.FloatRange{Min: 2, Max: 2}})
	if len(out[0].Samples) != len(words[0].Samples) || len(out[0].Effects) != 0 {
		t.Fatal("failed stretch should keep the original clip")
	}
}

func TestRepeatWordsExact(t *testing.T) {
	tr := New(audio.NativeStretcher{}, rng.New(5), nil)
	words := []audio.Clip{clip(0.2, 0), clip(0.3, 1)}
	out := tr.RepeatWords(context.Background(), words, config.Repeat{Probability: 1, Count: config.IntRange{Min: 1, Max: 1}, Style: StyleExact}, nil)
	if len(out) != 4 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0].Effects[0] != audio.WordRepeat(1, StyleExact) {
		t.Fatalf("effects = %v", out[0].Effects)
	}
	if len(out[1].Samples) != len(words[0].Samples) || len(out[3].Samples) != len(words[1].Samples) {
		t.Fatal("exact copies should match their original")
	}
}

type stubSource struct {
	ok        bool
	calls     int
	requested []int
}

func (s *stubSource) FreshWords(_ context.Context, syllables, n int) ([]audio.Clip, bool) {
	s.calls++
	s.requested = append(s.requested, syllables)
	if !s.ok {
		return nil, false
	}
	out := make([]audio.Clip, n)
	for i := range out {
		out[i] = clip(0.5, 99)
	}
	return out, true
}

func TestRepeatWordsResample(t *testing.T) {
	words := []audio.Clip{clip(0.2, 0)}
	cfg := config.Repeat{Probability: 1, Count: config.IntRange{Min: 2, Max: 2}, Style: StyleResample}

	fresh := &stubSource{ok: true}
	out := New(audio.NativeStretcher{}, rng.New(6), nil).RepeatWords(context.Background(), words, cfg, fresh)
	if len(out) != 3 || out[1].Syllables[0].WordIndex != 99 {
		t.Fatalf("resample did not use fresh words: %d", len(out))
	}
	if out[0].Effects[0].Style != StyleResample {
		t.Fatalf("style = %q", out[0].Effects[0].Style)
	}

	empty := &stubSource{ok: false}
	out = New(audio.NativeStretcher{}, rng.New(6), nil).RepeatWords(context.Background(), words, cfg, empty)
	if len(out) != 3 || out[1].Syllables[0].WordIndex != 0 {
		t.Fatal("exhausted pool should fall back to exact copies")
	}
	if out[0].Effects[0].Style != StyleExact {
		t.Fatalf("fallback style = %q", out[0].Effects[0].Style)
	}
}

func TestResampleAfterStutterAsksForSelectedSyllables(t *testing.T) {
	first := clip(0.1, 4)
	second := clip(0.1, 4)
	second.Syllables[0].Start, second.Syllables[0].End = 0.1, 0.2

	tr := New(audio.NativeStretcher{}, rng.New(8), nil)
	stuttered := tr.Stutter([][]audio.Clip{{first, second}}, config.Stutter{Probability: 1, Count: config.IntRange{Min: 2, Max: 2}})
	if len(stuttered[0]) != 6 {
		t.Fatalf("stuttered word has %d clips, want 6", len(stuttered[0]))
	}
	word := audio.Join(stuttered[0], 0)

	fresh := &stubSource{ok: true}
	cfg := config.Repeat{Probability: 1, Count: config.IntRange{Min: 1, Max: 1}, Style: StyleResample}
	tr.RepeatWords(context.Background(), []audio.Clip{word}, cfg, fresh)
	if !reflect.DeepEqual(fresh.requested, []int{2}) {
		t.Fatalf("fresh words requested with %v syllables, want [2]", fresh.requested)
	}
}

func TestExactRepeatMatchesPlannedDuration(t *testing.T) {
	words := []audio.Clip{clip(0.25, 0)}
	cfg := config.Repeat{Probability: 1, Count: config.IntRange{Min: 3, Max: 3}, Style: StyleExact}
	out := New(audio.NativeStretcher{}, rng.New(9), nil).RepeatWords(context.Background(), words, cfg, nil)

	total := 0.0
	for _, w := range out {
		total += w.Duration()
	}
	planned := audio.EffectiveDuration(words[0].Duration(), out[0].Effects)
	if math.Abs(total-planned) > 1e-9 {
		t.Fatalf("rendered %.4fs, planned %.4fs", total, planned)
	}
}

func TestSpeed(t *testing.T) {
	tr := New(audio.NativeStretcher{}, rng.New(7), nil)
	mix := clip(1.0, 0)
	fast := tr.Speed(context.Background(), mix, 2)
	if got, want := len(fast.Samples), len(mix.Samples)/2; got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}
	if same := tr.Speed(context.Background(), mix, 1); len(same.Samples) != len(mix.Samples) {
		t.Fatal("speed 1 should be a no-op")
	}
}
