package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtwatch/courtwatch/internal/browser"
	"github.com/courtwatch/courtwatch/internal/config"
	"github.com/courtwatch/courtwatch/internal/logger"
	"github.com/courtwatch/courtwatch/internal/metrics"
	"github.com/courtwatch/courtwatch/internal/schedule"
	"github.com/courtwatch/courtwatch/internal/scraper"
	"github.com/courtwatch/courtwatch/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courtwatch",
		Short: "Scrape and serve basketball court availability",
		Long: `Scrapes availability from venue booking sites with a headless
browser, normalizes it into per-day schedules, and serves it as JSON.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stdout))
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "config.toml", "Path to config file")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newVenuesCmd())

	return cmd
}

// app bundles the pieces a scraping command needs.
type app struct {
	cfg   *config.Config
	loc   *time.Location
	store *storage.Storage
	pool  *browser.Pool
	sc    *scraper.Scraper
	m     *metrics.Metrics
}

// buildApp loads config and wires storage, the browser pool and the
// scraper. Overrides run after the file and env are applied, before any
// component is built. The caller owns the pool and must Close it.
func buildApp(withMetrics bool, overrides ...func(*config.Config) error) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	for _, override := range overrides {
		if err := override(cfg); err != nil {
			return nil, err
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := storage.New(cfg.Scrape.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	var m *metrics.Metrics
	if withMetrics {
		m = metrics.New("courtwatch")
	}

	pool := browser.NewPool(cfg.Scrape.Headless)
	return &app{
		cfg:   cfg,
		loc:   loc,
		store: store,
		pool:  pool,
		sc:    scraper.New(pool, loc, m),
		m:     m,
	}, nil
}

func (a *app) close() {
	a.pool.Close()
}

// scrapeCycle runs one full scrape of every configured venue.
func (a *app) scrapeCycle(ctx context.Context) *schedule.Snapshot {
	results := a.sc.ScrapeAll(ctx, a.cfg.ScraperVenues(), a.cfg.Scrape.MaxWorkers)
	return schedule.NewSnapshot(results, time.Now().In(a.loc))
}

// refresh scrapes and persists a snapshot. Individual venue failures are
// recorded inside the snapshot; only a persistence failure fails the run.
func (a *app) refresh(ctx context.Context) error {
	snapshot := a.scrapeCycle(ctx)
	if err := a.store.Save(snapshot); err != nil {
		a.m.ObserveRefresh("error")
		return fmt.Errorf("saving snapshot: %w", err)
	}
	a.m.ObserveRefresh("ok")
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
