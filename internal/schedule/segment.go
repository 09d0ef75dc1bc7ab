package schedule

import "time"

// SplitDays segments a flat, source-ordered slot sequence into calendar
// days keyed by date, starting at start's date and advancing one day per
// boundary.
//
// The grid-layout sites render one continuous list spanning several days
// with no date markers, but times within a day never decrease and each new
// day restarts near opening time. A non-increasing time transition is
// therefore treated as a day boundary. A day that happens to open later
// than the previous day's last slot would be missed; that is a known limit
// of the heuristic, not something this function tries to guess around.
func SplitDays(slots []Slot, start time.Time) map[string]Day {
	days := make(map[string]Day)
	date := start
	prev := -1
	var current Day

	for _, slot := range slots {
		minutes := MinutesOfDay(slot.TimeLabel)
		if minutes <= prev && len(current) > 0 {
			days[date.Format(DateFormat)] = current
			current = nil
			date = date.AddDate(0, 0, 1)
		}
		current = append(current, slot)
		prev = minutes
	}

	if len(current) > 0 {
		days[date.Format(DateFormat)] = current
	}
	return days
}
