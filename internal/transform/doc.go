// Package transform applies the stutter, stretch, and word-repeat effects at
// their fixed pipeline checkpoints.
//
// Every operation is copy-and-replace: a transformed clip is a new buffer
// substituted at the same position, never an in-place edit of shared audio.
// A failed stretch leaves that clip untouched and processing continues.
package transform
