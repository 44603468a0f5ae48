// Package preflight provides readiness checks for the directories, checklist
// profile, and history database that riplogcheck depends on.
//
// The CLI "riplogcheck status" command prints every result; "check" runs the
// profile check before evaluating anything so a broken rule in the config
// fails fast instead of aborting each log.
//
// Each check is gated by its config toggle -- disabled features are skipped.
package preflight
