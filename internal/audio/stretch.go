package audio

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// MinStretchSeconds is the shortest buffer the stretch primitives accept.
// Overlap-add on shorter audio smears transients into clicks.
const MinStretchSeconds = 0.08

// ErrTooShort is returned when a buffer is below MinStretchSeconds.
var ErrTooShort = errors.New("audio too short to stretch")

// Stretcher is the time-stretch and pitch-shift primitive. TimeStretch keeps
// pitch and scales duration by factor; PitchShift keeps duration and moves
// pitch by semitones. Implementations return a new buffer.
type Stretcher interface {
	TimeStretch(ctx context.Context, samples []float64, sr int, factor float64) ([]float64, error)
	PitchShift(ctx context.Context, samples []float64, sr int, semitones float64) ([]float64, error)
}

const (
	stretchWindowSeconds = 0.03
	stretchSeekSeconds   = 0.008
)

// NativeStretcher is an in-process WSOLA (waveform-similarity overlap-add)
// implementation of Stretcher.
type NativeStretcher struct{}

// TimeStretch implements Stretcher.
func (NativeStretcher) TimeStretch(ctx context.Context, samples []float64, sr int, factor float64) ([]float64, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("time stretch: invalid factor %v", factor)
	}
	if Duration(samples, sr) < MinStretchSeconds {
		return nil, ErrTooShort
	}
	if factor == 1 {
		return append([]float64(nil), samples...), nil
	}
	return wsola(ctx, samples, sr, factor)
}

// PitchShift implements Stretcher by stretching by the pitch ratio and then
// resampling back to the original length.
func (s NativeStretcher) PitchShift(ctx context.Context, samples []float64, sr int, semitones float64) ([]float64, error) {
	if semitones == 0 {
		return append([]float64(nil), samples...), nil
	}
	ratio := math.Pow(2, semitones/12)
	stretched, err := s.TimeStretch(ctx, samples, sr, ratio)
	if err != nil {
		return nil, err
	}
	return ResampleToLength(stretched, len(samples)), nil
}

func wsola(ctx context.Context, samples []float64, sr int, factor float64) ([]float64, error) {
	win := max(Samples(stretchWindowSeconds, sr), 32)
	if win > len(samples) {
		win = len(samples)
	}
	hop := max(win/2, 1)
	seek := Samples(stretchSeekSeconds, sr)
	outLen := int(math.Round(float64(len(samples)) * factor))
	if outLen <= 0 {
		return nil, ErrTooShort
	}

	window := hann(win)
	out := make([]float64, outLen+win)
	norm := make([]float64, outLen+win)

	prevIn := -1
	for frame := 0; ; frame++ {
		if frame%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		outPos := frame * hop
		if outPos >= outLen {
			break
		}
		target := int(math.Round(float64(outPos) / factor))
		inPos := target
		if prevIn >= 0 {
			inPos = bestOverlap(samples, prevIn+hop, target, seek, hop)
		}
		inPos = min(max(inPos, 0), max(len(samples)-1, 0))
		for i := range win {
			idx := inPos + i
			if idx >= len(samples) {
				break
			}
			out[outPos+i] += samples[idx] * window[i]
			norm[outPos+i] += window[i]
		}
		prevIn = inPos
	}

	for i := range outLen {
		if norm[i] > 1e-3 {
			out[i] /= norm[i]
		}
	}
	return out[:outLen], nil
}

// bestOverlap searches target±seek for the input offset whose first overlap
// samples best match the natural continuation of the previous frame.
func bestOverlap(samples []float64, natural, target, seek, overlap int) int {
	if natural+overlap > len(samples) {
		return target
	}
	best := target
	bestScore := math.Inf(-1)
	for cand := target - seek; cand <= target+seek; cand++ {
		if cand < 0 || cand+overlap > len(samples) {
			continue
		}
		score := 0.0
		for i := 0; i < overlap; i += 2 {
			score += samples[natural+i] * samples[cand+i]
		}
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
