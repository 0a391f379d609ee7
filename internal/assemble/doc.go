// Package assemble joins clips into the collage hierarchy. Syllables become
// words and words become phrases by crossfaded concatenation; phrases are
// then laid end to end with pauses between them. Pause lengths and breath
// placement are planned from the run's random stream before any audio is
// rendered, left to right, so the plan is reproducible from the seed.
//
// Gaps are filled with silence, with room tone mixed in when any source had
// a quiet stretch, and phrase gaps may open with a breath.
package assemble
