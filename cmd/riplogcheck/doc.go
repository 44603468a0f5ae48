// Package main hosts the riplogcheck CLI entrypoint and command graph.
//
// The Cobra-based command tree evaluates rip logs against the configured
// checklist, browses and prunes the evaluation history, prints the active
// profile, and scaffolds configuration. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on
// output instead of wiring.
//
// Keep this package lean: checklist semantics live in internal/checklist and
// presentation in internal/report; commands here only connect them.
package main
