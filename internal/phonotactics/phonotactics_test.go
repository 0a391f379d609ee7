package phonotactics

import (
	"reflect"
	"strings"
	"testing"

	"glottisdale/internal/rng"
	"glottisdale/internal/syllable"
)

func syl(labels ...string) syllable.Syllable {
	phones := make([]syllable.Phoneme, len(labels))
	for i, l := range labels {
		phones[i] = syllable.Phoneme{Label: l, Start: float64(i) * 0.05, End: float64(i+1) * 0.05}
	}
	return syllable.Syllable{Phonemes: phones, Start: 0, End: float64(len(labels)) * 0.05, Word: strings.Join(labels, "")}
}

func TestSonority(t *testing.T) {
	tests := map[string]int{
		"AE1": SonorityVowel,
		"ER0": SonorityVowel,
		"AH":  SonorityVowel,
		"K":   SonorityStop,
		"CH":  SonorityAffricate,
		"S":   SonorityFricative,
		"N":   SonorityNasal,
		"L":   SonorityLiquid,
		"W":   SonorityGlide,
		"a":   SonorityVowel,
		"aɪ":  SonorityVowel,
		"iː":  SonorityVowel,
		"p":   SonorityStop,
		"ʃ":   SonorityFricative,
		"ŋ":   SonorityNasal,
		"ɹ":   SonorityLiquid,
		"j":   SonorityGlide,
		"QQ":  SonorityUnknown,
		"":    SonorityUnknown,
	}
	for label, want := range tests {
		if got := Sonority(label); got != want {
			t.Fatalf("Sonority(%q) = %d, want %d", label, got, want)
		}
	}
}

func TestIllegalOnsets(t *testing.T) {
	for _, label := range []string{"NG", "ZH", "ŋ"} {
		if !IsIllegalOnset(label) {
			t.Fatalf("%q should be an illegal onset", label)
		}
	}
	for _, label := range []string{"N", "S", "n", "AE1"} {
		if IsIllegalOnset(label) {
			t.Fatalf("%q should be a legal onset", label)
		}
	}
}

func TestScoreJunctionKnownPairs(t *testing.T) {
	stopStop := ScoreJunction(syl("AE1", "T"), syl("K", "AE1"))
	hiatus := ScoreJunction(syl("K", "AE1"), syl("IY1", "T"))
	if stopStop <= hiatus {
		t.Fatalf("stop-stop (%d) should outscore vowel-vowel (%d)", stopStop, hiatus)
	}
	if stopStop != 1 {
		t.Fatalf("stop-stop = %d, want 1", stopStop)
	}
	if hiatus != -2 {
		t.Fatalf("hiatus = %d, want -2", hiatus)
	}
	if got := ScoreJunction(syllable.Syllable{}, syl("K")); got != 0 {
		t.Fatalf("empty phonemes = %d, want 0", got)
	}
}

func TestIllegalOnsetPenaltyAppliesEverywhere(t *testing.T) {
	legal := syl("N", "AH0")
	illegal := syl("NG", "AH0")
	for _, left := range []syllable.Syllable{syl("AE1", "T"), syl("K", "AA1"), syl("S", "L"), syl("IY1")} {
		if ScoreJunction(left, illegal) > ScoreJunction(left, legal)-2 {
			t.Fatalf("after %v: illegal %d vs legal %d", left.Phonemes, ScoreJunction(left, illegal), ScoreJunction(left, legal))
		}
	}
}

func TestOrderSyllablesDeterministic(t *testing.T) {
	input := []syllable.Syllable{syl("B", "AH0"), syl("NG", "AE1"), syl("N", "AH0", "T"), syl("IY1")}
	first := OrderSyllables(input, rng.New(7), DefaultOrderingAttempts)
	second := OrderSyllables(input, rng.New(7), DefaultOrderingAttempts)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same seed produced different orders")
	}
	if len(first) != len(input) {
		t.Fatalf("len = %d", len(first))
	}
	if input[0].FirstLabel() != "B" {
		t.Fatal("input slice was reordered in place")
	}
}

func TestOrderSyllablesPicksBestCandidate(t *testing.T) {
	input := []syllable.Syllable{syl("AE1", "T"), syl("NG", "AH0"), syl("K", "IY1")}
	got := OrderSyllables(input, rng.New(3), 200)
	best := ScoreSequence(got)
	// With enough attempts every permutation of three items is seen.
	for _, perm := range [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}} {
		candidate := []syllable.Syllable{input[perm[0]], input[perm[1]], input[perm[2]]}
		if ScoreSequence(candidate) > best {
			t.Fatalf("found better permutation %v (%d > %d)", perm, ScoreSequence(candidate), best)
		}
	}
}

func TestOrderSyllablesShortInputsConsumeNothing(t *testing.T) {
	stream := rng.New(1)
	reference := rng.New(1)
	OrderSyllables([]syllable.Syllable{syl("K", "AE1")}, stream, 5)
	OrderSyllables(nil, stream, 5)
	if stream.Uint64() != reference.Uint64() {
		t.Fatal("single syllable ordering consumed draws")
	}
}

func TestSplitPronunciation(t *testing.T) {
	tests := []struct {
		pron string
		want []string
	}{
		{"K AE1 T", []string{"K AE1 T"}},
		{"B AH0 N AE1 N AH0", []string{"B AH0", "N AE1", "N AH0"}},
		{"EH1 K S T R AH0", []string{"EH1 K", "S T R AH0"}},
		{"M IH1 S T ER0", []string{"M IH1 S", "T ER0"}},
		{"HH M", []string{"HH M"}},
	}
	for _, tt := range tests {
		groups := SplitPronunciation(strings.Fields(tt.pron))
		got := make([]string, len(groups))
		for i, g := range groups {
			got[i] = strings.Join(g, " ")
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("SplitPronunciation(%q) = %q, want %q", tt.pron, got, tt.want)
		}
	}
}

func TestSyllabifyProportionalTiming(t *testing.T) {
	word := syllable.Word{Word: "banana", Start: 1, End: 1.6}
	for _, l := range strings.Fields("B AH0 N AE1 N AH0") {
		word.Phonemes = append(word.Phonemes, syllable.Phoneme{Label: l})
	}
	got := Syllabify(word, 4)
	if len(got) != 3 {
		t.Fatalf("syllables = %d", len(got))
	}
	if got[0].Start != 1 || got[2].End != 1.6 {
		t.Fatalf("span = %v-%v", got[0].Start, got[2].End)
	}
	for i, s := range got {
		if err := s.Validate(); err != nil {
			t.Fatalf("syllable %d invalid: %v", i, err)
		}
		if s.WordIndex != 4 || s.Word != "banana" {
			t.Fatalf("syllable %d provenance = %q/%d", i, s.Word, s.WordIndex)
		}
	}
}

func TestSyllabifyUsesPhonemeTiming(t *testing.T) {
	word := syllable.Word{Word: "extra", Start: 0, End: 1, Phonemes: []syllable.Phoneme{
		{Label: "EH1", Start: 0.0, End: 0.2},
		{Label: "K", Start: 0.2, End: 0.3},
		{Label: "S", Start: 0.3, End: 0.5},
		{Label: "T", Start: 0.5, End: 0.6},
		{Label: "R", Start: 0.6, End: 0.7},
		{Label: "AH0", Start: 0.7, End: 0.9},
	}}
	got := Syllabify(word, 0)
	if len(got) != 2 {
		t.Fatalf("syllables = %d", len(got))
	}
	if got[0].End != 0.3 || got[1].Start != 0.3 || got[1].End != 0.9 {
		t.Fatalf("bounds = %v-%v, %v-%v", got[0].Start, got[0].End, got[1].Start, got[1].End)
	}
}
