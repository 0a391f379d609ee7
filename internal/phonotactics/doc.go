// Package phonotactics scores how naturally one syllable flows into the next
// and orders the syllables of a word to favour clean junctions.
//
// Scoring is driven by the sonority class of the phonemes on either side of
// a junction. Labels may be ARPABET (upper case, vowels carry stress digits)
// or IPA (lower case or non-ASCII); both map onto the same seven-step scale.
// The package also carries the Maximum Onset syllabifier used when an
// alignment supplies word pronunciations instead of syllables.
package phonotactics
