package testsupport

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"glottisdale/internal/audio"
	"glottisdale/internal/rng"
	"glottisdale/internal/syllable"
)

// SampleRate is the rate fixture recordings are written at.
const SampleRate = 16000

// WriteSource writes name.wav under dir along with its alignment sidecar and
// returns the audio path. The recording holds `words` tone bursts of 0.2 s,
// each a word in the alignment, separated by 0.1 s of faint noise and
// followed by 0.8 s of it so room tone can be found. Words carry no phonemes
// and therefore resolve to one syllable each.
func WriteSource(t testing.TB, dir, name string, words int, freq float64) string {
	t.Helper()
	noise := rng.New(int64(words) + int64(freq))
	var samples []float64
	var doc syllable.Alignment
	appendNoise := func(seconds float64) {
		for range audio.Samples(seconds, SampleRate) {
			samples = append(samples, 0.001*noise.FloatBetween(-1, 1))
		}
	}
	for w := range words {
		start := audio.Duration(samples, SampleRate)
		for i := range audio.Samples(0.2, SampleRate) {
			samples = append(samples, 0.5*math.Sin(2*math.Pi*(freq+float64(10*w))*float64(i)/SampleRate))
		}
		end := audio.Duration(samples, SampleRate)
		doc.Words = append(doc.Words, syllable.Word{Word: fmt.Sprintf("word%d", w), Start: start, End: end})
		appendNoise(0.1)
	}
	appendNoise(0.8)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	audioPath := filepath.Join(dir, name+".wav")
	if err := audio.WriteWAV(audioPath, samples, SampleRate); err != nil {
		t.Fatalf("write %s: %v", audioPath, err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal alignment: %v", err)
	}
	if err := os.WriteFile(syllable.SidecarPath(audioPath), data, 0o644); err != nil {
		t.Fatalf("write alignment: %v", err)
	}
	return audioPath
}
