// Package dateutil normalizes the free-form date strings found in Zotero
// exports to ISO 8601 calendar dates.
package dateutil

import (
	"time"

	"github.com/araddon/dateparse"
)

// ISO is the canonical output layout.
const ISO = "2006-01-02"

// Layouts accepted for Zotero date fields, tried in order. Partial dates
// fill in day and month as 01.
var Layouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"2006",
}

// Normalize converts a raw date string to YYYY-MM-DD. The second return
// value is false when the input is empty or unrecognized; that is a normal
// outcome, not an error, and must never abort an item.
func Normalize(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISO), true
		}
	}
	// Zotero sometimes exports full timestamps, like "2020-05-07 10:30:22";
	// one lenient attempt before giving up.
	if t, err := dateparse.ParseStrict(s); err == nil {
		return t.Format(ISO), true
	}
	return "", false
}
