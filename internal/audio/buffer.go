package audio

import (
	"errors"
	"math"
)

// ErrEmptyRange is returned when a cut resolves to no samples.
var ErrEmptyRange = errors.New("audio range is empty after clamping")

// Samples converts seconds to a sample count at rate sr.
func Samples(seconds float64, sr int) int {
	if seconds <= 0 || sr <= 0 {
		return 0
	}
	return int(math.Round(seconds * float64(sr)))
}

// Duration returns the length of samples in seconds.
func Duration(samples []float64, sr int) float64 {
	if sr <= 0 {
		return 0
	}
	return float64(len(samples)) / float64(sr)
}

// Silence returns seconds of digital silence.
func Silence(seconds float64, sr int) []float64 {
	return make([]float64, Samples(seconds, sr))
}

// Cut extracts [start-padding, end+padding] from source, clamped to the
// buffer bounds, and applies half-sine fades of fade seconds at both ends. A
// cut shorter than two fades gets fades of half its length.
func Cut(source []float64, sr int, start, end, padding, fade float64) ([]float64, error) {
	lo := Samples(start-padding, sr)
	if start-padding < 0 {
		lo = 0
	}
	hi := Samples(end+padding, sr)
	if hi > len(source) {
		hi = len(source)
	}
	if lo >= hi {
		return nil, ErrEmptyRange
	}
	out := append([]float64(nil), source[lo:hi]...)
	applyHalfSineFades(out, Samples(fade, sr))
	return out, nil
}

func applyHalfSineFades(samples []float64, fadeLen int) {
	n := len(samples)
	fadeLen = min(fadeLen, n/2)
	if fadeLen <= 0 {
		return
	}
	for i := range fadeLen {
		g := math.Sin(math.Pi / 2 * float64(i) / float64(fadeLen))
		samples[i] *= g
		samples[n-1-i] *= g
	}
}

// Concatenate joins buffers with a linear crossfade of crossfade samples
// between neighbours. The fade is shortened to the shorter neighbour when
// needed, so the result length is the sum of lengths minus the applied
// overlaps.
func Concatenate(parts [][]float64, crossfade int) []float64 {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]float64, 0, total)
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		cf := min(crossfade, len(out), len(p))
		if cf <= 0 {
			out = append(out, p...)
			continue
		}
		base := len(out) - cf
		for i := range cf {
			t := float64(i+1) / float64(cf+1)
			out[base+i] = out[base+i]*(1-t) + p[i]*t
		}
		out = append(out, p[cf:]...)
	}
	return out
}

// Mix adds secondary under primary at gainDB. The secondary buffer loops when
// it is shorter than primary. The result has the length of primary.
func Mix(primary, secondary []float64, gainDB float64) []float64 {
	out := append([]float64(nil), primary...)
	if len(secondary) == 0 {
		return out
	}
	g := DBToGain(gainDB)
	for i := range out {
		out[i] += secondary[i%len(secondary)] * g
	}
	return out
}

// Gain returns samples scaled by gainDB.
func Gain(samples []float64, gainDB float64) []float64 {
	g := DBToGain(gainDB)
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s * g
	}
	return out
}

// GainRegion scales the half-open sample range [from, to) by gainDB in place
// on a copy and returns it.
func GainRegion(samples []float64, from, to int, gainDB float64) []float64 {
	out := append([]float64(nil), samples...)
	from = max(from, 0)
	to = min(to, len(out))
	g := DBToGain(gainDB)
	for i := from; i < to; i++ {
		out[i] *= g
	}
	return out
}

// DBToGain converts decibels to a linear amplitude factor.
func DBToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// RMS returns the root-mean-square level of samples.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Peak returns the largest absolute sample value.
func Peak(samples []float64) float64 {
	peak := 0.0
	for _, s := range samples {
		peak = max(peak, math.Abs(s))
	}
	return peak
}

// Resample converts samples from srcRate to dstRate using linear
// interpolation. Matching rates return a copy.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || srcRate <= 0 || dstRate <= 0 {
		return append([]float64(nil), samples...)
	}
	n := int(math.Round(float64(len(samples)) * float64(dstRate) / float64(srcRate)))
	return ResampleToLength(samples, n)
}

// ResampleToLength linearly interpolates samples onto n evenly spaced points.
func ResampleToLength(samples []float64, n int) []float64 {
	if n <= 0 || len(samples) == 0 {
		return nil
	}
	out := make([]float64, n)
	if len(samples) == 1 || n == 1 {
		for i := range out {
			out[i] = samples[0]
		}
		return out
	}
	step := float64(len(samples)-1) / float64(n-1)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}
	return out
}
