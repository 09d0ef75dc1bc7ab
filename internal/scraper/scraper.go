package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/courtwatch/courtwatch/internal/browser"
	"github.com/courtwatch/courtwatch/internal/metrics"
	"github.com/courtwatch/courtwatch/internal/schedule"
)

// Layout identifies how a venue's booking site renders availability.
type Layout string

const (
	// LayoutGrid is a flat, dateless, time-ordered list of calendar blocks.
	LayoutGrid Layout = "grid"
	// LayoutTabbed is a date-header grid behind period tabs.
	LayoutTabbed Layout = "tabbed"
)

// KnownLayout reports whether s names a supported layout.
func KnownLayout(s string) bool {
	switch Layout(s) {
	case LayoutGrid, LayoutTabbed, "":
		return true
	}
	return false
}

// Venue describes one facility-booking page to scrape.
type Venue struct {
	ID     string
	Name   string
	URL    string
	Layout Layout // empty means LayoutGrid
	Courts int    // court count used as capacity for the tabbed layout
}

const (
	// defaultGridCapacity stands in when a grid block reads NOT AVAILABLE;
	// the source shows no maximum in that state.
	defaultGridCapacity = 5
	// defaultCourtCount is the tabbed-layout capacity when the venue
	// config doesn't specify one.
	defaultCourtCount = 4

	venueTimeout = 90 * time.Second
	waitTimeout  = 60 * time.Second
	settleDelay  = time.Second
)

// waitVisible bounds the element wait separately from the whole-venue
// timeout so a page that renders nothing fails faster than one that is
// merely slow overall.
func waitVisible(ctx context.Context, page browser.Page, selector string) error {
	ctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()
	return page.WaitVisible(ctx, selector)
}

// PageOpener hands out an isolated browser page per venue scrape.
type PageOpener interface {
	NewPage() browser.Page
}

// Scraper scrapes venue booking pages into schedule data.
type Scraper struct {
	pages PageOpener
	loc   *time.Location
	m     *metrics.Metrics
	now   func() time.Time // injectable for tests
}

// New creates a Scraper. Dates in results are local to loc. Metrics may
// be nil to disable recording.
func New(pages PageOpener, loc *time.Location, m *metrics.Metrics) *Scraper {
	return &Scraper{pages: pages, loc: loc, m: m, now: time.Now}
}

// ScrapeVenue scrapes one venue in its own browser page and never fails:
// navigation timeouts, markup surprises and panics all fold into a result
// with an Error message and no days. Partial day data already parsed is
// reported as-is without an error.
func (s *Scraper) ScrapeVenue(ctx context.Context, v Venue) (result schedule.VenueResult) {
	result = schedule.VenueResult{Name: v.Name, Days: map[string]schedule.Day{}}
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Sprintf("scrape panicked: %v", r)
		}
	}()

	page := s.pages.NewPage()
	defer page.Close() // nolint:errcheck

	ctx, cancel := context.WithTimeout(ctx, venueTimeout)
	defer cancel()

	var days map[string]schedule.Day
	var err error
	switch v.Layout {
	case LayoutTabbed:
		days, err = s.scrapeTabbed(ctx, page, v)
	default:
		days, err = s.scrapeGrid(ctx, page, v)
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Days = days
	return result
}
