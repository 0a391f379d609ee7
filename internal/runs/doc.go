// Package runs owns run directories and the run history.
//
// Every collage gets a directory under the output root named
// <date>-<adjective>-<noun>. The name is drawn from its own generator seeded
// with the run seed, so naming never touches the pipeline's random stream and
// a seed always suggests the same name. Allocation is serialized across
// processes with an flock on the output root.
//
// Completed runs are recorded in a SQLite database under the state
// directory; `glottisdale runs list` and `runs show` read from it.
package runs
