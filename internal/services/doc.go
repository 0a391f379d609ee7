// Package services defines shared utilities consumed by the collage pipeline
// stages and the external tool adapters.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper that let the CLI tell
//     input-fatal failures (bad configuration, missing inputs) apart from
//     tool and I/O failures.
//
// Subpackages wrap external collaborators (ffmpeg) behind narrow interfaces so
// they can be swapped for in-process implementations in tests.
package services
