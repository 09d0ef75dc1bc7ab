package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/courtwatch/courtwatch/internal/logger"
	"github.com/courtwatch/courtwatch/internal/schedule"
)

// ScrapeAll scrapes every venue concurrently under a bounded worker pool
// and returns one result per venue, keyed by venue ID. Venues share no
// state beyond the collection map, which is written under a single mutex
// as tasks complete in whatever order they finish. A slow venue delays
// only the overall return, never other venues' results.
func (s *Scraper) ScrapeAll(ctx context.Context, venues []Venue, maxWorkers int) map[string]schedule.VenueResult {
	total := len(venues)
	if total == 0 {
		return map[string]schedule.VenueResult{}
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if maxWorkers > total {
		maxWorkers = total
	}

	logger.Info("scraping venues", logger.Fields{"venues": total, "workers": maxWorkers})
	started := time.Now()

	results := make(map[string]schedule.VenueResult, total)
	var mu sync.Mutex
	completed := 0

	jobs := make(chan Venue)
	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range jobs {
				begin := time.Now()
				result := s.ScrapeVenue(ctx, v)
				elapsed := time.Since(begin)

				outcome := "ok"
				if result.Error != "" {
					outcome = "error"
				}
				s.m.ObserveScrape(v.ID, outcome, elapsed)

				mu.Lock()
				results[v.ID] = result
				completed++
				progress := fmt.Sprintf("%d/%d", completed, total)
				mu.Unlock()

				fields := logger.Fields{
					"venue":    v.ID,
					"days":     len(result.Days),
					"elapsed":  elapsed.Round(time.Millisecond).String(),
					"progress": progress,
				}
				if result.Error != "" {
					fields["error"] = result.Error
					logger.Warn("venue scrape degraded", fields)
				} else {
					logger.Info("venue scraped", fields)
				}
			}
		}()
	}

	for _, v := range venues {
		jobs <- v
	}
	close(jobs)
	wg.Wait()

	logger.Info("scrape cycle complete", logger.Fields{
		"venues":  total,
		"elapsed": time.Since(started).Round(time.Millisecond).String(),
	})
	return results
}
