// Package bank builds the syllable bank: decoded source audio paired with the
// syllables its alignment describes, and the cut operation that turns a
// syllable into an owned audio clip.
//
// Sources load in parallel because they never interact. Everything after
// loading is read-only, so a Bank can be shared by the sequential stages that
// follow.
package bank
