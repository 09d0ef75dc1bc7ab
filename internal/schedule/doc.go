// Package schedule defines the canonical availability model shared by the
// scrapers, storage, and web layers.
//
// The schedule package normalizes heterogeneous per-venue readings into one
// shape: a Slot is a single time-unit availability reading, a Day is the
// ordered slot list for one calendar date, and a Snapshot is the full
// timestamped result of one scrape cycle across all venues. It also holds
// the time-label parsing and the day-segmentation algorithm that assigns
// calendar dates to dateless slot sequences.
package schedule
