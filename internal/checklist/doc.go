// Package checklist evaluates rip logs against an ordered list of
// correctness criteria.
//
// An Engine runs each Check in a fixed order against one Document and folds
// every outcome into a fresh Result: violated criteria set their flag and
// add the weight from the DeductionTable. A check whose matcher breaks
// reports Indeterminate, which aborts the run with a CheckFailedError; a
// plain violation never does.
//
// Engines hold no mutable state, so one engine can evaluate many logs
// concurrently. Profiles bundle a check list with its deduction table so a
// new ripping tool is supported by supplying a profile, not new engine code.
package checklist
