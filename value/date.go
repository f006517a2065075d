package value

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DayLayout is the calendar-day layout used on the wire.
const DayLayout = "2006-01-02"

// ParseDate parses a date in any of the common layouts submission systems
// export ("2021-02-01", "2021-02-01 10:11:12", RFC 3339, ...).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Day normalizes s to YYYY-MM-DD, or "" when it cannot be parsed.
func Day(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format(DayLayout)
}
