// Package batch evaluates many rip logs with one engine.
//
// Expand turns command-line arguments (plain paths, directories, and
// doublestar globs such as "rips/**/*.log") into a sorted file list. Runner
// fans the files out over a bounded worker group and returns one FileReport
// per input path, in input order. A failing log never stops the others.
package batch
