package polish

import (
	"math"
	"slices"

	"glottisdale/internal/audio"
)

// F0 estimation bounds and confidence.
const (
	F0MinHz = 50.0
	F0MaxHz = 400.0
	// F0Confidence is the normalized autocorrelation a lag peak must reach
	// before the clip counts as voiced.
	F0Confidence = 0.3
	// silenceRMS is the level below which a buffer is treated as silent.
	silenceRMS = 1e-6
)

// Room tone search parameters.
const (
	rmsWindowSeconds = 0.025
	rmsHopSeconds    = 0.012
	// RoomToneFloorPercentile and RoomToneFloorFactor define "quiet": a
	// window is quiet when its RMS is below factor times the percentile.
	RoomToneFloorPercentile = 0.10
	RoomToneFloorFactor     = 2.0
	// RoomToneMaxRelative caps the quiet threshold relative to the mean
	// window RMS so uniformly loud material never qualifies.
	RoomToneMaxRelative = 0.1
	// MinRoomToneSeconds is the shortest usable room tone.
	MinRoomToneSeconds = 0.5
)

// Breath detection parameters.
const (
	BreathMinGapSeconds = 0.2
	BreathMaxGapSeconds = 0.6
	// Gap RMS relative to median word RMS: quieter is silence, louder is
	// speech.
	BreathMinRelative = 0.01
	BreathMaxRelative = 0.30
)

// Span is a time range in seconds.
type Span struct {
	Start float64
	End   float64
}

// WindowedRMS returns the RMS of successive windows of windowSec seconds
// spaced hopSec apart.
func WindowedRMS(samples []float64, sr int, windowSec, hopSec float64) []float64 {
	win := audio.Samples(windowSec, sr)
	hop := audio.Samples(hopSec, sr)
	if win <= 0 || hop <= 0 || len(samples) < win {
		return nil
	}
	frames := (len(samples)-win)/hop + 1
	out := make([]float64, frames)
	for i := range out {
		start := i * hop
		out[i] = audio.RMS(samples[start : start+win])
	}
	return out
}

// EstimateF0 estimates the fundamental frequency of a clip by normalized
// autocorrelation over lags for F0MinHz..F0MaxHz. It returns false for
// silent clips and when no lag reaches F0Confidence.
func EstimateF0(samples []float64, sr int) (float64, bool) {
	if len(samples) == 0 || sr <= 0 || audio.RMS(samples) < silenceRMS {
		return 0, false
	}
	lagMin := int(float64(sr) / F0MaxHz)
	lagMax := min(int(float64(sr)/F0MinHz), len(samples)-1)
	if lagMin < 1 || lagMin >= lagMax {
		return 0, false
	}

	mean := 0.0
	for _, s := range samples {
		mean += s
	}
	mean /= float64(len(samples))
	x := make([]float64, len(samples))
	r0 := 0.0
	for i, s := range samples {
		x[i] = s - mean
		r0 += x[i] * x[i]
	}
	if r0 < 1e-12 {
		return 0, false
	}

	corr := make([]float64, lagMax-lagMin+1)
	for i := range corr {
		lag := lagMin + i
		sum := 0.0
		for j := 0; j+lag < len(x); j++ {
			sum += x[j] * x[j+lag]
		}
		corr[i] = sum / r0
	}

	// First local peak above the confidence threshold.
	if len(corr) >= 2 && corr[0] >= F0Confidence && corr[0] >= corr[1] {
		return float64(sr) / float64(lagMin), true
	}
	for i := 1; i < len(corr)-1; i++ {
		if corr[i] >= F0Confidence && corr[i] >= corr[i-1] && corr[i] >= corr[i+1] {
			return float64(sr) / float64(lagMin+i), true
		}
	}
	return 0, false
}

// FindRoomTone returns the longest run of quiet windows in a recording. A
// window is quiet below RoomToneFloorFactor times the
// RoomToneFloorPercentile window RMS, capped at RoomToneMaxRelative of the
// mean. It returns false when no run lasts MinRoomToneSeconds.
func FindRoomTone(samples []float64, sr int) (Span, bool) {
	if audio.Duration(samples, sr) < MinRoomToneSeconds {
		return Span{}, false
	}
	rms := WindowedRMS(samples, sr, rmsWindowSeconds, rmsHopSeconds)
	if len(rms) == 0 {
		return Span{}, false
	}
	mean := 0.0
	for _, v := range rms {
		mean += v
	}
	mean /= float64(len(rms))
	if mean < 1e-10 {
		return Span{Start: 0, End: audio.Duration(samples, sr)}, true
	}

	threshold := math.Min(RoomToneFloorFactor*percentile(rms, RoomToneFloorPercentile), RoomToneMaxRelative*mean)

	bestStart, bestLen, curStart, curLen := 0, 0, 0, 0
	for i, v := range rms {
		if v >= threshold {
			curLen = 0
			continue
		}
		if curLen == 0 {
			curStart = i
		}
		curLen++
		if curLen > bestLen {
			bestStart, bestLen = curStart, curLen
		}
	}
	if bestLen == 0 {
		return Span{}, false
	}
	hop := audio.Samples(rmsHopSeconds, sr)
	win := audio.Samples(rmsWindowSeconds, sr)
	startSample := bestStart * hop
	endSample := min((bestStart+bestLen-1)*hop+win, len(samples))
	span := Span{Start: float64(startSample) / float64(sr), End: float64(endSample) / float64(sr)}
	if span.End-span.Start < MinRoomToneSeconds {
		return Span{}, false
	}
	return span, true
}

// FindBreaths returns the inter-word gaps of BreathMinGapSeconds to
// BreathMaxGapSeconds whose RMS lies between BreathMinRelative and
// BreathMaxRelative of the median word RMS.
func FindBreaths(samples []float64, sr int, words []Span) []Span {
	if len(words) < 2 {
		return nil
	}
	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b Span) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})

	var wordRMS []float64
	for _, w := range sorted {
		if seg := slice(samples, sr, w); len(seg) > 0 {
			if r := audio.RMS(seg); r > silenceRMS {
				wordRMS = append(wordRMS, r)
			}
		}
	}
	if len(wordRMS) == 0 {
		return nil
	}
	reference := median(wordRMS)

	var out []Span
	for i := 0; i+1 < len(sorted); i++ {
		gap := Span{Start: sorted[i].End, End: sorted[i+1].Start}
		d := gap.End - gap.Start
		if d < BreathMinGapSeconds || d > BreathMaxGapSeconds {
			continue
		}
		seg := slice(samples, sr, gap)
		if len(seg) == 0 {
			continue
		}
		ratio := audio.RMS(seg) / reference
		if ratio >= BreathMinRelative && ratio <= BreathMaxRelative {
			out = append(out, gap)
		}
	}
	return out
}

func slice(samples []float64, sr int, s Span) []float64 {
	lo := min(max(int(s.Start*float64(sr)), 0), len(samples))
	hi := min(max(int(s.End*float64(sr)), 0), len(samples))
	if hi <= lo {
		return nil
	}
	return samples[lo:hi]
}

func percentile(values []float64, p float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	return sorted[idx]
}

// median returns the upper median, matching the index len/2.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}
