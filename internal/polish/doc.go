// Package polish holds the signal-analysis heuristics that make a collage
// sound less like a cut-up: pitch and volume normalization, room tone and
// breath extraction, the pink-noise bed, and the per-phrase gain envelope.
//
// Analysis never fails a run. A clip that cannot be analysed is left as it
// is, and a feature with nothing to work from (no quiet window, no breath
// candidates) is simply switched off for the run. Per-clip and per-source
// analysis runs in parallel; anything that draws random numbers does not.
package polish
