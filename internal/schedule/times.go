package schedule

import (
	"strings"
	"time"
)

// clockLayouts are tried in priority order; the first successful parse wins.
// Covers "6:30 PM", "18:30", and "6:30PM" style labels.
var clockLayouts = []string{"3:04 PM", "15:04", "3:04PM"}

// parseClock attempts to parse a displayed time label.
func parseClock(label string) (time.Time, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Canonical converts a displayed time label into sortable 24-hour "HH:MM"
// form. Unrecognized labels are returned unchanged rather than erroring:
// one malformed label must not void a venue's schedule.
func Canonical(label string) string {
	if t, ok := parseClock(label); ok {
		return t.Format("15:04")
	}
	return label
}

// MinutesOfDay converts a displayed time label to minutes since midnight
// for ordering and day-boundary comparison. Unrecognized labels map to 0.
func MinutesOfDay(label string) int {
	if t, ok := parseClock(label); ok {
		return t.Hour()*60 + t.Minute()
	}
	return 0
}
