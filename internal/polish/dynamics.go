package polish

import "glottisdale/internal/audio"

// Prosodic envelope: phrases open slightly louder and relax over the last
// word.
const (
	DynamicsMinSeconds = 0.3
	OnsetBoostDB       = 1.12
	OnsetPortion       = 0.2
	TailCutDB          = -3.0
	TailStart          = 0.7
)

// ProsodicDynamics applies the phrase gain envelope. Phrases no longer than
// DynamicsMinSeconds come back unchanged.
func ProsodicDynamics(phrase audio.Clip) audio.Clip {
	if phrase.Duration() <= DynamicsMinSeconds {
		return phrase
	}
	n := len(phrase.Samples)
	samples := audio.GainRegion(phrase.Samples, 0, int(float64(n)*OnsetPortion), OnsetBoostDB)
	samples = applyRegionInPlace(samples, int(float64(n)*TailStart), n, TailCutDB)
	return phrase.Replace(samples, nil)
}

func applyRegionInPlace(samples []float64, from, to int, db float64) []float64 {
	g := audio.DBToGain(db)
	for i := max(from, 0); i < min(to, len(samples)); i++ {
		samples[i] *= g
	}
	return samples
}
