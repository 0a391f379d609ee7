package polish

import (
	"glottisdale/internal/audio"
	"glottisdale/internal/rng"
)

// pinkRows is the number of Voss-McCartney generator rows.
const pinkRows = 16

// PinkNoise returns n samples of approximately 1/f noise normalized to a peak
// of 1, generated with the Voss-McCartney algorithm from stream.
func PinkNoise(n int, stream *rng.Stream) []float64 {
	if n <= 0 {
		return nil
	}
	var rows [pinkRows]float64
	sum := 0.0
	for i := range rows {
		rows[i] = stream.FloatBetween(-1, 1)
		sum += rows[i]
	}
	out := make([]float64, n)
	for i := range out {
		// The row to refresh is the number of trailing zeros of i.
		if i != 0 {
			zeros := 0
			for v := i; v&1 == 0; v >>= 1 {
				zeros++
			}
			if zeros < pinkRows {
				sum -= rows[zeros]
				rows[zeros] = stream.FloatBetween(-1, 1)
				sum += rows[zeros]
			}
		}
		out[i] = sum + stream.FloatBetween(-1, 1)
	}
	if peak := audio.Peak(out); peak > 0 {
		for i := range out {
			out[i] /= peak
		}
	}
	return out
}

// MixNoiseBed mixes pink noise under mix at levelDB. A level of 0 disables
// the bed and consumes no draws.
func MixNoiseBed(mix []float64, levelDB float64, stream *rng.Stream) []float64 {
	if levelDB == 0 || len(mix) == 0 {
		return mix
	}
	return audio.Mix(mix, PinkNoise(len(mix), stream), levelDB)
}
