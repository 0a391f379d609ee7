// Package ffmpeg wraps the ffmpeg binary for the two jobs the pipeline hands
// to it: decoding arbitrary containers into mono PCM WAV, and the optional
// filter-graph implementation of the time-stretch and pitch-shift primitive.
//
// Command execution goes through an injectable runner so tests can observe
// argument lists and fake outputs without ffmpeg installed.
package ffmpeg
