package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/courtwatch/courtwatch/internal/config"
)

var (
	flagFormat   string
	flagSave     bool
	flagVenues   []string
	flagHeadless bool
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run one scrape cycle and print the results",
		RunE:  runScrape,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagSave, "save", false, "Persist the snapshot to the data directory")
	cmd.Flags().StringSliceVar(&flagVenues, "venue", nil, "Scrape only the named venue (repeatable)")
	cmd.Flags().BoolVar(&flagHeadless, "headless", true, "Run the browser headless")
	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	a, err := buildApp(false, func(cfg *config.Config) error {
		if cmd.Flags().Changed("headless") {
			cfg.Scrape.Headless = flagHeadless
		}
		if len(flagVenues) == 0 {
			return nil
		}
		byID := make(map[string]config.VenueConfig, len(cfg.Venues))
		for _, v := range cfg.Venues {
			byID[v.ID] = v
		}
		selected := make([]config.VenueConfig, 0, len(flagVenues))
		for _, id := range flagVenues {
			v, ok := byID[id]
			if !ok {
				return fmt.Errorf("unknown venue: %s", id)
			}
			selected = append(selected, v)
		}
		cfg.Venues = selected
		return nil
	})
	if err != nil {
		return err
	}
	defer a.close()

	snapshot := a.scrapeCycle(context.Background())

	if flagSave {
		if err := a.store.Save(snapshot); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}

	return WriteSnapshot(os.Stdout, snapshot, format)
}
