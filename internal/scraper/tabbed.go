package scraper

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/courtwatch/courtwatch/internal/browser"
	"github.com/courtwatch/courtwatch/internal/logger"
	"github.com/courtwatch/courtwatch/internal/schedule"
)

const (
	headerCellSelector = ".calendar-header .day-column"
	timeRowSelector    = ".time-row"
	timeLabelSelector  = ".time-label"
	slotCellSelector   = ".slot-cell"
)

// periods are activated in display order; each tab swaps in that period's
// time rows for the same date columns.
var periods = []string{"Morning", "Afternoon", "Evening"}

// spacesPattern extracts the free-space count from a cell's accessible
// label, e.g. "2 spaces available at 6:00 PM".
var spacesPattern = regexp.MustCompile(`(\d+)\s+spaces?`)

// scrapeTabbed reads the tabbed-period layout: parse the date headers,
// then walk the three period tabs accumulating slots per date. The site
// shows no capacity figure, so the venue's configured court count is used.
//
// Navigation failures are returned so the venue gets an error record; once
// the page is up, markup surprises degrade this venue to zero days instead
// of failing the batch.
func (s *Scraper) scrapeTabbed(ctx context.Context, page browser.Page, v Venue) (days map[string]schedule.Day, err error) {
	days = map[string]schedule.Day{}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("tabbed layout parse failed", logger.Fields{"venue": v.ID, "panic": fmt.Sprint(r)})
			days, err = map[string]schedule.Day{}, nil
		}
	}()

	if err := page.Navigate(ctx, v.URL); err != nil {
		return nil, err
	}
	if err := waitVisible(ctx, page, headerCellSelector); err != nil {
		return nil, err
	}
	if err := page.Sleep(ctx, settleDelay); err != nil {
		return nil, err
	}

	headers, err := page.QueryAll(ctx, headerCellSelector)
	if err != nil {
		return days, nil
	}
	dates := parseHeaderDates(headers, s.now().In(s.loc))
	if len(dates) == 0 {
		return days, nil
	}

	capacity := v.Courts
	if capacity <= 0 {
		capacity = defaultCourtCount
	}

	collected := make(map[string][]schedule.Slot, len(dates))
	for _, period := range periods {
		if err := page.Click(ctx, periodSelector(period)); err != nil {
			logger.Warn("period tab not clickable", logger.Fields{"venue": v.ID, "period": period})
			continue
		}
		if err := page.Sleep(ctx, settleDelay); err != nil {
			continue
		}
		rows, err := page.QueryAll(ctx, timeRowSelector)
		if err != nil {
			continue
		}
		collectPeriodRows(rows, dates, capacity, collected)
	}

	for date, slots := range collected {
		days[date] = dedupeAndSort(slots)
	}
	return days, nil
}

func periodSelector(period string) string {
	return fmt.Sprintf("li[data-period='%s']", period)
}

// parseHeaderDates resolves the header row into concrete dates, skipping
// cells that don't parse. Cell order defines the column→date alignment.
func parseHeaderDates(headers []browser.Element, now time.Time) []time.Time {
	dates := make([]time.Time, 0, len(headers))
	for _, h := range headers {
		if d, ok := schedule.ParseHeaderDate(h.Text(), now); ok {
			dates = append(dates, d)
		}
	}
	return dates
}

// collectPeriodRows reads one period's time rows. Each row holds one time
// label and one capacity cell per date column; cells are aligned with the
// parsed header dates by position, and extras beyond the header count are
// ignored.
func collectPeriodRows(rows []browser.Element, dates []time.Time, capacity int, collected map[string][]schedule.Slot) {
	for _, row := range rows {
		labels := row.Select(timeLabelSelector)
		if len(labels) == 0 {
			continue
		}
		timeLabel := labels[0].Text()

		for i, cell := range row.Select(slotCellSelector) {
			if i >= len(dates) {
				break
			}
			raw := cell.Attr("aria-label")
			available := 0
			if m := spacesPattern.FindStringSubmatch(raw); m != nil {
				available, _ = strconv.Atoi(m[1])
			}

			date := dates[i].Format(schedule.DateFormat)
			collected[date] = append(collected[date], schedule.Slot{
				TimeLabel: timeLabel,
				Time24h:   schedule.Canonical(timeLabel),
				RawStatus: raw,
				Available: available,
				Capacity:  capacity,
			})
		}
	}
}

// dedupeAndSort keeps the first slot seen for each canonical time and
// orders the day by minutes since midnight.
func dedupeAndSort(slots []schedule.Slot) schedule.Day {
	seen := make(map[string]bool, len(slots))
	day := make(schedule.Day, 0, len(slots))
	for _, slot := range slots {
		if seen[slot.Time24h] {
			continue
		}
		seen[slot.Time24h] = true
		day = append(day, slot)
	}
	sort.SliceStable(day, func(i, j int) bool {
		return schedule.MinutesOfDay(day[i].TimeLabel) < schedule.MinutesOfDay(day[j].TimeLabel)
	})
	return day
}
