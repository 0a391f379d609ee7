package polish

import (
	"context"
	"math"
	"testing"

	"glottisdale/internal/audio"
	"glottisdale/internal/bank"
	"glottisdale/internal/rng"
	"glottisdale/internal/syllable"
)

const sr = 16000

func sine(freq, seconds, amp float64) []float64 {
	out := make([]float64, audio.Samples(seconds, sr))
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/sr)
	}
	return out
}

func noise(seconds, amp float64, seed int64) []float64 {
	stream := rng.New(seed)
	out := make([]float64, audio.Samples(seconds, sr))
	for i := range out {
		out[i] = amp * stream.FloatBetween(-1, 1)
	}
	return out
}

func TestEstimateF0(t *testing.T) {
	f0, ok := EstimateF0(sine(200, 0.1, 0.5), sr)
	if !ok {
		t.Fatal("expected a voiced estimate")
	}
	if math.Abs(f0-200) > 5 {
		t.Fatalf("f0 = %v, want ~200", f0)
	}
	if _, ok := EstimateF0(make([]float64, 1600), sr); ok {
		t.Fatal("silence should be unvoiced")
	}
	if _, ok := EstimateF0(noise(0.1, 0.5, 1), sr); ok {
		t.Fatal("white noise should be unvoiced")
	}
	if _, ok := EstimateF0(nil, sr); ok {
		t.Fatal("empty clip should be unvoiced")
	}
}

func TestFindRoomTone(t *testing.T) {
	var samples []float64
	samples = append(samples, sine(180, 1.0, 0.5)...)
	samples = append(samples, noise(0.8, 0.002, 2)...)
	samples = append(samples, sine(220, 1.0, 0.5)...)
	span, ok := FindRoomTone(samples, sr)
	if !ok {
		t.Fatal("expected room tone")
	}
	if span.Start < 0.95 || span.End > 1.85 || span.End-span.Start < MinRoomToneSeconds {
		t.Fatalf("span = %+v", span)
	}
}

func TestFindRoomToneUniformEnergy(t *testing.T) {
	if _, ok := FindRoomTone(sine(200, 3, 0.5), sr); ok {
		t.Fatal("uniformly loud source should have no room tone")
	}
	if _, ok := FindRoomTone(sine(200, 0.2, 0.5), sr); ok {
		t.Fatal("short source should have no room tone")
	}
}

func TestFindBreaths(t *testing.T) {
	var samples []float64
	samples = append(samples, sine(200, 0.5, 0.5)...)   // word 0-0.5
	samples = append(samples, noise(0.3, 0.05, 3)...)   // breath 0.5-0.8
	samples = append(samples, sine(200, 0.5, 0.5)...)   // word 0.8-1.3
	samples = append(samples, make([]float64, 4800)...) // silence 1.3-1.6
	samples = append(samples, sine(200, 0.5, 0.5)...)   // word 1.6-2.1
	words := []Span{{0, 0.5}, {0.8, 1.3}, {1.6, 2.1}}
	got := FindBreaths(samples, sr, words)
	if len(got) != 1 {
		t.Fatalf("breaths = %v", got)
	}
	if got[0].Start != 0.5 || got[0].End != 0.8 {
		t.Fatalf("breath span = %+v", got[0])
	}
	if FindBreaths(samples, sr, words[:1]) != nil {
		t.Fatal("one word cannot have gaps")
	}
}

func TestPinkNoise(t *testing.T) {
	a := PinkNoise(4000, rng.New(5))
	b := PinkNoise(4000, rng.New(5))
	if len(a) != 4000 {
		t.Fatalf("len = %d", len(a))
	}
	if math.Abs(audio.Peak(a)-1) > 1e-12 {
		t.Fatalf("peak = %v", audio.Peak(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("pink noise not deterministic for a seed")
		}
	}
	if PinkNoise(0, rng.New(1)) != nil {
		t.Fatal("zero length should be nil")
	}
}

func TestMixNoiseBedDisabled(t *testing.T) {
	stream := rng.New(1)
	ref := rng.New(1)
	mix := []float64{0.1, 0.2}
	out := MixNoiseBed(mix, 0, stream)
	if &out[0] != &mix[0] || stream.Uint64() != ref.Uint64() {
		t.Fatal("level 0 should leave the mix and stream untouched")
	}
	quiet := MixNoiseBed(make([]float64, 1000), -40, rng.New(2))
	if p := audio.Peak(quiet); p > 0.0101 || p == 0 {
		t.Fatalf("noise peak = %v", p)
	}
}

func TestPitchCorrection(t *testing.T) {
	if got := PitchCorrection(100, 200, 5); got != 5 {
		t.Fatalf("clamped up = %v", got)
	}
	if got := PitchCorrection(200, 100, 5); got != -5 {
		t.Fatalf("clamped down = %v", got)
	}
	if got := PitchCorrection(200, 200*math.Pow(2, 2.0/12), 5); math.Abs(got-2) > 1e-9 {
		t.Fatalf("two semitones = %v", got)
	}
}

func TestNormalizePitchLeavesUnvoiced(t *testing.T) {
	clips := []audio.Clip{
		{Samples: sine(150, 0.2, 0.4), SampleRate: sr},
		{Samples: sine(200, 0.2, 0.4), SampleRate: sr},
		{Samples: sine(200, 0.2, 0.4), SampleRate: sr},
		{Samples: make([]float64, 3200), SampleRate: sr},
	}
	out, err := NewEngine(audio.NativeStretcher{}, 2, nil).NormalizePitch(context.Background(), clips, 5)
	if err != nil {
		t.Fatalf("NormalizePitch: %v", err)
	}
	if len(out) != len(clips) {
		t.Fatalf("len = %d", len(out))
	}
	if len(out[0].Effects) != 1 || out[0].Effects[0].Kind != audio.EffectPitchShift {
		t.Fatalf("low clip effects = %v", out[0].Effects)
	}
	if out[0].Effects[0].Semitones <= 0 {
		t.Fatalf("low clip should shift up, got %v", out[0].Effects[0].Semitones)
	}
	if len(out[1].Effects) != 0 || len(out[3].Effects) != 0 {
		t.Fatal("on-target and silent clips should be untouched")
	}
	for i := range out {
		if len(out[i].Samples) != len(clips[i].Samples) {
			t.Fatalf("clip %d changed length", i)
		}
	}
}

func TestNormalizeVolume(t *testing.T) {
	clips := []audio.Clip{
		{Samples: sine(200, 0.1, 0.1), SampleRate: sr},
		{Samples: sine(200, 0.1, 0.4), SampleRate: sr},
		{Samples: sine(200, 0.1, 0.41), SampleRate: sr},
		{Samples: make([]float64, 100), SampleRate: sr},
	}
	out := NormalizeVolume(clips)
	target := audio.RMS(clips[1].Samples)
	if got := audio.RMS(out[0].Samples); math.Abs(got-target)/target > 0.01 {
		t.Fatalf("quiet clip rms = %v, want ~%v", got, target)
	}
	if &out[2].Samples[0] != &clips[2].Samples[0] {
		t.Fatal("sub-threshold adjustment should leave the clip alone")
	}
	if audio.RMS(out[3].Samples) != 0 {
		t.Fatal("silent clip should stay silent")
	}
	if audio.RMS(clips[0].Samples) > 0.1 {
		t.Fatal("input clip modified")
	}
}

func TestProsodicDynamics(t *testing.T) {
	flat := make([]float64, sr)
	for i := range flat {
		flat[i] = 0.5
	}
	out := ProsodicDynamics(audio.Clip{Samples: flat, SampleRate: sr})
	if out.Samples[0] <= 0.5 || out.Samples[sr/2] != 0.5 || out.Samples[sr-1] >= 0.5 {
		t.Fatalf("envelope = %v %v %v", out.Samples[0], out.Samples[sr/2], out.Samples[sr-1])
	}
	if flat[0] != 0.5 {
		t.Fatal("input modified")
	}
	short := audio.Clip{Samples: flat[:1000], SampleRate: sr}
	if got := ProsodicDynamics(short); got.Samples[0] != 0.5 {
		t.Fatal("short phrase should be unchanged")
	}
}

func TestExtractKeepsSourceOrder(t *testing.T) {
	var quietMiddle []float64
	quietMiddle = append(quietMiddle, sine(180, 1, 0.5)...)
	quietMiddle = append(quietMiddle, noise(0.8, 0.002, 4)...)
	quietMiddle = append(quietMiddle, sine(180, 1, 0.5)...)
	sources := []*bank.Source{
		{ID: "loud", SampleRate: sr, Samples: sine(200, 3, 0.5)},
		{ID: "quiet", SampleRate: sr, Samples: quietMiddle,
			Syllables: []syllable.Syllable{{WordIndex: 0, Start: 0, End: 1}, {WordIndex: 1, Start: 1.8, End: 2.8}}},
	}
	amb, err := NewEngine(audio.NativeStretcher{}, 4, nil).Extract(context.Background(), sources, true, true)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(amb.RoomTones) != 1 || amb.RoomTones[0].Source != "quiet" || len(amb.RoomTones[0].Samples) == 0 {
		t.Fatalf("room tones = %+v", amb.RoomTones)
	}
	if len(amb.Breaths) != 0 {
		t.Fatalf("breaths = %d", len(amb.Breaths))
	}
}

func TestWordSpansFromSyllables(t *testing.T) {
	src := &bank.Source{Syllables: []syllable.Syllable{
		{WordIndex: 0, Start: 0.1, End: 0.2},
		{WordIndex: 0, Start: 0.2, End: 0.35},
		{WordIndex: 1, Start: 0.6, End: 0.8},
	}}
	got := WordSpans(src)
	if len(got) != 2 || got[0] != (Span{0.1, 0.35}) || got[1] != (Span{0.6, 0.8}) {
		t.Fatalf("spans = %v", got)
	}
}
