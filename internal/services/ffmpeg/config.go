package ffmpeg

// Command names and fixed arguments.
const (
	DefaultBinary = "ffmpeg"
	PCMCodec      = "pcm_s16le"

	// atempo accepts factors in [0.5, 100]; slower tempos are chained.
	minTempo = 0.5
	maxTempo = 100.0
)
