// Command glottisdale builds syllable collages from aligned speech.
//
// Subcommands:
//   - collage: cut, reorder, transform and reassemble syllables into a new
//     recording plus a manifest
//   - config init/validate: manage the TOML configuration
//   - runs list/show: browse the run history
//   - deps: report external tool availability
package main
