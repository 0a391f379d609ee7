package grouping

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"

	"glottisdale/internal/config"
	"glottisdale/internal/rng"
	"glottisdale/internal/syllable"
)

func fixedPool(source string, n int, dur float64) []syllable.Syllable {
	out := make([]syllable.Syllable, n)
	for i := range out {
		start := float64(i) * dur
		out[i] = syllable.Syllable{Start: start, End: start + dur, WordIndex: i, Source: source}
	}
	return out
}

func TestSampleConcreteScenario(t *testing.T) {
	pool := fixedPool("a", 20, 0.1)
	got, err := Sample([][]syllable.Syllable{pool}, 10.0, rng.New(42))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	total := syllable.TotalDuration(got)
	if total > 10.0+durationTolerance || total <= 10.0-0.1 {
		t.Fatalf("total = %v, want (9.9, 10]", total)
	}
	again, err := Sample([][]syllable.Syllable{pool}, 10.0, rng.New(42))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if !reflect.DeepEqual(got, again) {
		t.Fatal("same seed produced different selections")
	}
}

func TestSampleStopsBeforeExceeding(t *testing.T) {
	pool := fixedPool("a", 50, 0.3)
	got, err := Sample([][]syllable.Syllable{pool}, 2.0, rng.New(1))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("selected %d, want 6", len(got))
	}
	seen := map[int]bool{}
	for _, s := range got {
		if seen[s.WordIndex] {
			t.Fatal("syllable reused before the pool was exhausted")
		}
		seen[s.WordIndex] = true
	}
}

func TestSampleAlwaysTakesFirst(t *testing.T) {
	pool := fixedPool("a", 3, 1.0)
	got, err := Sample([][]syllable.Syllable{pool}, 0.5, rng.New(9))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("selected %d, want 1", len(got))
	}
}

func TestSampleMultiSourceRoundRobin(t *testing.T) {
	a := fixedPool("a", 10, 0.2)
	b := fixedPool("b", 10, 0.2)
	got, err := Sample([][]syllable.Syllable{a, b}, 1.2, rng.New(5))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	counts := map[string]int{}
	for _, s := range got {
		counts[s.Source]++
	}
	if counts["a"] != 3 || counts["b"] != 3 {
		t.Fatalf("counts = %v, want 3/3", counts)
	}
}

func TestSampleErrors(t *testing.T) {
	if _, err := Sample(nil, 5, rng.New(1)); !errors.Is(err, ErrNoSyllables) {
		t.Fatalf("expected ErrNoSyllables, got %v", err)
	}
	if _, err := Sample([][]syllable.Syllable{{}, {}}, 5, rng.New(1)); !errors.Is(err, ErrNoSyllables) {
		t.Fatalf("expected ErrNoSyllables, got %v", err)
	}
	zero := []syllable.Syllable{{Start: 1, End: 1}}
	if _, err := Sample([][]syllable.Syllable{zero}, 5, rng.New(1)); !errors.Is(err, ErrTargetUnreachable) {
		t.Fatalf("expected ErrTargetUnreachable, got %v", err)
	}
}

func TestWordLengthStaysInRange(t *testing.T) {
	stream := rng.New(3)
	counts := map[int]int{}
	r := config.IntRange{Min: 1, Max: 4}
	for range 4000 {
		n := WordLength(r, stream)
		if n < 1 || n > 4 {
			t.Fatalf("length %d out of range", n)
		}
		counts[n]++
	}
	if counts[2] <= counts[4] || counts[2] <= counts[1] {
		t.Fatalf("expected two-syllable words to dominate: %v", counts)
	}
	if got := WordLength(config.IntRange{Min: 3, Max: 3}, stream); got != 3 {
		t.Fatalf("fixed length = %d", got)
	}
	wide := config.IntRange{Min: 1, Max: 8}
	for range 200 {
		if n := WordLength(wide, stream); n < 1 || n > 8 {
			t.Fatalf("wide length %d out of range", n)
		}
	}
}

func TestGroupWordsPartitionsInput(t *testing.T) {
	input := fixedPool("a", 37, 0.1)
	words := GroupWords(input, config.IntRange{Min: 1, Max: 4}, rng.New(11), 5)
	var flat []int
	pos := 0
	for _, w := range words {
		if len(w) < 1 || len(w) > 4 {
			t.Fatalf("word of %d syllables", len(w))
		}
		// Each word holds exactly the next slice of the input, possibly reordered.
		var got, want []int
		for i, s := range w {
			got = append(got, s.WordIndex)
			want = append(want, input[pos+i].WordIndex)
		}
		sort.Ints(got)
		sort.Ints(want)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("word %v does not match input slice %v", got, want)
		}
		pos += len(w)
		flat = append(flat, got...)
	}
	if len(flat) != len(input) {
		t.Fatalf("words hold %d syllables, want %d", len(flat), len(input))
	}
}

func TestGroupChunksPreservesOrder(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}
	groups := GroupChunks(items, config.IntRange{Min: 3, Max: 5}, rng.New(2))
	next := 0
	for gi, g := range groups {
		if gi < len(groups)-1 && (len(g) < 3 || len(g) > 5) {
			t.Fatalf("group %d has %d items", gi, len(g))
		}
		for _, v := range g {
			if v != next {
				t.Fatalf("order broken: got %d want %d", v, next)
			}
			next++
		}
	}
	if next != len(items) {
		t.Fatalf("covered %d items", next)
	}
	if got := GroupChunks([]int(nil), config.IntRange{Min: 1, Max: 2}, rng.New(1)); len(got) != 0 {
		t.Fatalf("empty input gave %d groups", len(got))
	}
}

func TestGroupChunksFixedSizeConsumesNoDraws(t *testing.T) {
	stream := rng.New(4)
	ref := rng.New(4)
	GroupChunks([]int{1, 2, 3, 4, 5}, config.IntRange{Min: 2, Max: 2}, stream)
	if math.Abs(stream.Float64()-ref.Float64()) > 0 {
		t.Fatal("fixed group size consumed draws")
	}
}
