// Package scraper extracts court availability from venue booking pages
// and normalizes it into the schedule model.
//
// Two source layouts are supported. The grid layout renders one flat,
// dateless list of time/availability blocks spanning several days; its
// slots are assigned dates by the day-segmentation algorithm. The tabbed
// layout renders an explicit date-header grid behind Morning, Afternoon
// and Evening period tabs. Per venue, the scraper dispatches on the
// configured layout, drives an isolated browser page, and folds every
// failure into a per-venue error record so one broken site never aborts
// the batch. ScrapeAll runs all venues under a bounded worker pool.
package scraper
