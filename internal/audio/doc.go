// Package audio holds the sample-buffer primitives the pipeline is built on:
// cutting with padding and fades, crossfade concatenation, silence, mixing,
// gain, resampling, WAV I/O, and the in-process time-stretch and pitch-shift
// primitive.
//
// Clip pairs a buffer with the syllables it was cut from, and Effect records
// each transform applied to it so the manifest can describe every clip.
//
// Buffers are mono float64 samples in [-1, 1]. Every function returns a new
// buffer and leaves its inputs untouched, so callers can substitute results
// into shared structures without aliasing.
package audio
