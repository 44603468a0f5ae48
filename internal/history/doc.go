// Package history persists completed checklist evaluations in SQLite.
//
// Each evaluation gets a UUID run ID. Only completed runs are stored:
// aborted and empty-input runs produce no result and therefore no row. The
// schema is embedded and versioned; a version mismatch is reported rather
// than migrated because the history is a convenience cache, not a system of
// record. Schema creation is serialized across processes with a lock file
// next to the database.
package history
