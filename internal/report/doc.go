// Package report renders checklist results for people and for tools.
//
// Three formats are supported: a rounded go-pretty table per log, and JSON
// or YAML documents carrying the same fields. Each log also gets a score,
// 100 minus its deducted points, floored at zero.
package report
