package schedule

import (
	"sort"
	"time"
)

// DateFormat is the canonical key format for day maps (source-local dates).
const DateFormat = "2006-01-02"

// Slot represents one bookable time unit at one venue on one day.
// JSON field names match the snapshot file layout consumed by the web UI.
type Slot struct {
	TimeLabel string `json:"time_slot"`         // as displayed, e.g. "6:30 PM"
	Time24h   string `json:"time_24h"`          // canonical HH:MM
	RawStatus string `json:"availability_text"` // original availability reading
	Available int    `json:"available"`
	Capacity  int    `json:"max_slots"`
}

// Day is the ordered slot list for one venue on one calendar date.
type Day []Slot

// VenueResult holds one venue's scraped schedule. Error is set only when
// the scrape produced no days at all; partial data is reported as-is.
type VenueResult struct {
	Name  string         `json:"name"`
	Days  map[string]Day `json:"days"`
	Error string         `json:"error,omitempty"`
}

// Snapshot is the aggregated, timestamped result of one complete scrape
// cycle. A published snapshot is never mutated; refreshes build a new one
// and replace the old atomically at the persistence layer.
type Snapshot struct {
	Venues      map[string]VenueResult `json:"venues"`
	LastUpdated string                 `json:"last_updated"`
}

// NewSnapshot stamps a completed scrape cycle with its completion time.
func NewSnapshot(venues map[string]VenueResult, completedAt time.Time) *Snapshot {
	if venues == nil {
		venues = make(map[string]VenueResult)
	}
	return &Snapshot{
		Venues:      venues,
		LastUpdated: completedAt.Format(time.RFC3339),
	}
}

// EmptySnapshot returns a snapshot with no venues and no timestamp, used
// when nothing has been scraped yet.
func EmptySnapshot() *Snapshot {
	return &Snapshot{Venues: make(map[string]VenueResult)}
}

// Dates returns the venue's day keys in ascending order.
func (v VenueResult) Dates() []string {
	dates := make([]string, 0, len(v.Days))
	for d := range v.Days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
