package audio

import (
	"errors"
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrNotWAV is returned when a file is not a readable RIFF/WAVE container.
var ErrNotWAV = errors.New("not a valid wav file")

const outputBitDepth = 16

// ReadWAV decodes a PCM WAV file and returns its first channel normalized to
// [-1, 1] together with the sample rate.
func ReadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrNotWAV)
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("read pcm buffer: %w", err)
	}
	if buf == nil || buf.Format == nil {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrNotWAV)
	}

	channels := max(buf.Format.NumChannels, 1)
	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = int(decoder.BitDepth)
	}
	if depth <= 0 {
		depth = outputBitDepth
	}
	scale := math.Pow(2, float64(depth-1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range frames {
		samples[i] = float64(buf.Data[i*channels]) / scale
	}
	return samples, buf.Format.SampleRate, nil
}

// WriteWAV encodes samples as 16-bit mono PCM, clamping to [-1, 1].
func WriteWAV(path string, samples []float64, sr int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	data := make([]int, len(samples))
	for i, s := range samples {
		clamped := math.Max(-1, math.Min(1, s))
		data[i] = int(math.Round(clamped * 32767))
	}

	encoder := wav.NewEncoder(f, sr, outputBitDepth, 1, 1)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{SampleRate: sr, NumChannels: 1},
		SourceBitDepth: outputBitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return f.Close()
}
