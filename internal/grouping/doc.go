// Package grouping selects syllables up to a target duration and folds the
// selection into the syllable, word, phrase, and sentence hierarchy.
//
// Every level uses the same shape: draw a length, slice that many items off
// the front of what remains, repeat until nothing is left. Words draw their
// length from a weighted distribution and are reordered for clean junctions;
// phrases and sentences draw uniformly and keep selection order.
package grouping
