// Package dominion implements the extraction pipeline: decoding the upstream
// calendar feed, normalizing it into designation entries, and aggregating a
// forward-looking window for downstream consumers.
package dominion

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// ParseMSDate decodes the upstream's wrapped millisecond-epoch date format,
// e.g. "/Date(1769558400000)/", as local wall-clock time. ok is false for the
// null marker and for anything unparseable; callers skip those records.
func ParseMSDate(s string) (time.Time, bool) {
	if s == "" || s == "null" {
		return time.Time{}, false
	}
	open := strings.Index(s, "(")
	end := strings.Index(s, ")")
	if open < 0 || end <= open+1 {
		slog.Warn("unparseable upstream date", "value", s)
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(s[open+1:end], 10, 64)
	if err != nil {
		slog.Warn("unparseable upstream date", "value", s)
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
