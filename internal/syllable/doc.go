// Package syllable defines the phoneme and syllable records produced by
// upstream alignment and loads them from alignment sidecar files.
//
// Records are immutable once loaded: the bank hands them to later stages by
// value and no stage edits timing or labels. A Syllable never spans a word
// boundary, and its Start and End match its first and last phoneme when it has
// phonemes.
package syllable
