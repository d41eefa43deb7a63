// Package runjournal persists one record per pipeline invocation in SQLite:
// status transitions, the acquisition strategy that won, produced assets, and
// the failure reason when a run ends badly.
package runjournal
