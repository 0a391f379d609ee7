package assemble

import (
	"glottisdale/internal/audio"
)

// BreathCrossfadeMS joins a breath to the pause it opens.
const BreathCrossfadeMS = 10.0

// Words joins the syllable clips of each word with a crossfade of
// crossfadeMS. Empty words are dropped.
func Words(words [][]audio.Clip, crossfadeMS float64) []audio.Clip {
	out := make([]audio.Clip, 0, len(words))
	for _, syllables := range words {
		if len(syllables) == 0 {
			continue
		}
		out = append(out, audio.Join(syllables, crossfadeMS/1000))
	}
	return out
}

// Phrases joins the word clips of each phrase with a crossfade of
// crossfadeMS.
func Phrases(phrases [][]audio.Clip, crossfadeMS float64) []audio.Clip {
	return Words(phrases, crossfadeMS)
}

// Concatenate joins clips with crossfadeMS between neighbours. When gapsMS is
// given, gapsMS[i] milliseconds of silence are inserted after
// clip i before the crossfade is applied; zero gaps insert nothing. With no
// gaps and no crossfade the result is exactly the clips laid end to end.
func Concatenate(clips []audio.Clip, crossfadeMS float64, gapsMS []float64) audio.Clip {
	if len(clips) == 0 {
		return audio.Clip{}
	}
	sr := clips[0].SampleRate
	parts := make([]audio.Clip, 0, 2*len(clips))
	for i, c := range clips {
		parts = append(parts, c)
		if i < len(gapsMS) && gapsMS[i] > 0 {
			parts = append(parts, audio.Clip{SampleRate: sr, Samples: audio.Silence(gapsMS[i]/1000, sr)})
		}
	}
	return audio.Join(parts, crossfadeMS/1000)
}
