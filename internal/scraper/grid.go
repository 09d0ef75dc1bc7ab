package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/courtwatch/courtwatch/internal/browser"
	"github.com/courtwatch/courtwatch/internal/schedule"
)

// calendarBlockSelector matches the per-slot blocks on grid-layout sites.
const calendarBlockSelector = "div[class*='facility-calendar-block']"

// availabilityPattern extracts "available / capacity" pairs like "3 / 5".
var availabilityPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)

// scrapeGrid reads the flat grid layout: navigate, wait for calendar
// blocks, read each block's time and availability lines, then segment the
// dateless sequence into calendar days starting from today.
func (s *Scraper) scrapeGrid(ctx context.Context, page browser.Page, v Venue) (map[string]schedule.Day, error) {
	if err := page.Navigate(ctx, v.URL); err != nil {
		return nil, err
	}
	if err := waitVisible(ctx, page, calendarBlockSelector); err != nil {
		return nil, err
	}
	// Blocks keep appearing for a moment after the first one is visible.
	if err := page.Sleep(ctx, settleDelay); err != nil {
		return nil, err
	}

	blocks, err := page.QueryAll(ctx, calendarBlockSelector)
	if err != nil {
		return nil, fmt.Errorf("reading calendar blocks: %w", err)
	}

	slots := readGridSlots(blocks)
	return schedule.SplitDays(slots, s.now().In(s.loc)), nil
}

// readGridSlots converts calendar blocks to slots in document order.
// Blocks with fewer than two text lines are skipped.
func readGridSlots(blocks []browser.Element) []schedule.Slot {
	slots := make([]schedule.Slot, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block.Text()), "\n")
		if len(lines) < 2 {
			continue
		}

		timeLabel := strings.TrimSpace(lines[0])
		status := strings.TrimSpace(lines[1])
		available, capacity := parseAvailability(status)

		slots = append(slots, schedule.Slot{
			TimeLabel: timeLabel,
			Time24h:   schedule.Canonical(timeLabel),
			RawStatus: status,
			Available: available,
			Capacity:  capacity,
		})
	}
	return slots
}

// parseAvailability maps an availability reading to (available, capacity).
// "NOT AVAILABLE" readings carry no maximum, so a default capacity stands
// in; readings without an "X / Y" pair degrade to 0/0 rather than erroring.
func parseAvailability(status string) (int, int) {
	if strings.Contains(strings.ToUpper(status), "NOT AVAILABLE") {
		return 0, defaultGridCapacity
	}
	m := availabilityPattern.FindStringSubmatch(status)
	if m == nil {
		return 0, 0
	}
	available, _ := strconv.Atoi(m[1])
	capacity, _ := strconv.Atoi(m[2])
	return available, capacity
}
