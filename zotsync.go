// Package zotsync pushes bibliographic records from a Zotero CSV export
// into a Notion database, without creating duplicate entries. The sync is
// one-way and create-only: existing remote records are never updated or
// deleted.
package zotsync

// Version of the tool.
const Version = "0.1.0"

// LogFunc receives human readable progress messages, printf style. Callers
// decide where lines end up: terminal, UI pane, test buffer.
type LogFunc func(format string, v ...any)

// Discard is a LogFunc that drops all messages.
func Discard(format string, v ...any) {}

// Result summarizes one sync run. Items that failed to submit are neither
// pushed nor skipped, so Pushed+Skipped may be less than the input size.
type Result struct {
	Pushed  int
	Skipped int
}
