// Package logfile loads rip logs from disk and decodes them to UTF-8 text.
//
// Exact Audio Copy writes its logs as UTF-16LE with a byte order mark, older
// releases wrote the ANSI code page, and logs passed around trackers are often
// re-saved as UTF-8. Decode accepts all of these and normalizes line endings
// so checklist rules can anchor on "\n".
package logfile
