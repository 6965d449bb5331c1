// Package audit records builds and publishes in an optional JSON Lines log.
//
// The log is disabled unless [audit] log is set in sitelock.toml, so a
// default encrypt run writes exactly one file. Each entry carries:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - A random build ID
//   - The system user
//   - Operation name and operation-specific details
//
// # Usage
//
//	entry := audit.NewEntry("encrypt")
//	entry.FilesCount = len(files)
//	if err := audit.Log(config.Audit.Log, entry); err != nil {
//		log.Warnf("audit log not written: %v", err)
//	}
//
// # Reading Logs
//
// ReadEntries parses the log for `sitelock history`. Malformed lines are
// skipped to tolerate partial writes.
package audit
