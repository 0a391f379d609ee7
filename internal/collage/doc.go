// Package collage runs the syllable collage pipeline end to end.
//
// A run loads the sources, samples syllables up to the target duration,
// groups them into words, polishes and transforms the clips, assembles
// phrases and sentences with pauses, and finally writes the mix, the word
// clips and the manifest into a fresh run directory.
//
// All random decisions come from one stream seeded per run and are taken in
// a fixed order, so a seed reproduces the same manifest. Failures that leave
// nothing to assemble (no syllables, an unreachable target) are returned
// before any output is written. Everything else degrades one clip at a time.
package collage
