package ffmpeg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func baseArgs(source string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
	}
}

// buildDecodeArgs converts the first audio stream of source to mono PCM WAV.
func buildDecodeArgs(source, dest string, sampleRate int) []string {
	args := baseArgs(source)
	args = append(args,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
	)
	if sampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(sampleRate))
	}
	return append(args, "-c:a", PCMCodec, dest)
}

// buildFilterArgs runs source through an audio filter chain and writes mono
// PCM WAV at sampleRate.
func buildFilterArgs(source, dest, filter string, sampleRate int) []string {
	args := baseArgs(source)
	return append(args,
		"-filter:a", filter,
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-c:a", PCMCodec,
		dest,
	)
}

// tempoChain expresses a playback tempo as one or more atempo stages, each
// inside the range the filter accepts.
func tempoChain(tempo float64) string {
	var stages []string
	for tempo < minTempo {
		stages = append(stages, "atempo="+formatFactor(minTempo))
		tempo /= minTempo
	}
	for tempo > maxTempo {
		stages = append(stages, "atempo="+formatFactor(maxTempo))
		tempo /= maxTempo
	}
	if math.Abs(tempo-1) > 1e-9 || len(stages) == 0 {
		stages = append(stages, "atempo="+formatFactor(tempo))
	}
	return strings.Join(stages, ",")
}

// stretchFilter lengthens audio by factor without changing pitch.
func stretchFilter(factor float64) string {
	return tempoChain(1 / factor)
}

// pitchFilter raises pitch by semitones and restores the original tempo.
func pitchFilter(sampleRate int, semitones float64) string {
	ratio := math.Pow(2, semitones/12)
	shifted := int(math.Round(float64(sampleRate) * ratio))
	return fmt.Sprintf("asetrate=%d,aresample=%d,%s", shifted, sampleRate, tempoChain(1/ratio))
}

func formatFactor(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
