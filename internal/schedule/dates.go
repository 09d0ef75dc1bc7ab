package schedule

import (
	"strconv"
	"strings"
	"time"
)

// ParseHeaderDate parses a tabbed-layout column header into a concrete
// date. Header text is either two lines ("Wed" / "4 Feb") or one line
// ("Wed 4 Feb"); the weekday is ignored. The source never shows a year, so
// one is inferred from now: a month/day earlier than today means the
// schedule has crossed a year boundary (December into January) and the
// date rolls into next year. The result carries now's location.
func ParseHeaderDate(text string, now time.Time) (time.Time, bool) {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(fields[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	month, ok := parseMonth(fields[2])
	if !ok {
		return time.Time{}, false
	}

	year := now.Year()
	if month < now.Month() || (month == now.Month() && day < now.Day()) {
		year++
	}
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
}

func parseMonth(name string) (time.Month, bool) {
	t, err := time.Parse("Jan", name)
	if err != nil {
		return 0, false
	}
	return t.Month(), true
}
