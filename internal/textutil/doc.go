// Package textutil provides text helpers shared by the bank and the CLI.
//
// The primary use cases are:
//   - Normalizing transcript word text (Unicode NFC, lowercase, trimmed
//     punctuation) so manifests and clip names are stable across aligners
//   - Building filesystem-safe tokens for clip and run directory names
package textutil
