package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/courtwatch/courtwatch/internal/scraper"
)

// Config is the full process configuration.
type Config struct {
	Server ServerConfig  `toml:"server"`
	Scrape ScrapeConfig  `toml:"scrape"`
	Venues []VenueConfig `toml:"venues"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int `toml:"port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// ScrapeConfig configures the scrape engine.
type ScrapeConfig struct {
	Headless   bool   `toml:"headless"`
	MaxWorkers int    `toml:"max_workers"`
	Timezone   string `toml:"timezone"`
	DataDir    string `toml:"data_dir"`
}

// VenueConfig describes one venue entry.
type VenueConfig struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	URL    string `toml:"url"`
	Layout string `toml:"layout"` // "grid" (default) or "tabbed"
	Courts int    `toml:"courts"` // tabbed-layout capacity
}

// Load reads the configuration from path. A missing file yields the
// defaults; a present but invalid file is an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			ReadTimeout:     15,
			WriteTimeout:    30,
			ShutdownTimeout: 10,
		},
		Scrape: ScrapeConfig{
			Headless:   true,
			MaxWorkers: 1,
			Timezone:   "Australia/Melbourne",
			DataDir:    "data",
		},
		Venues: []VenueConfig{
			{ID: "boroondara", Name: "Boroondara Leisure", URL: "https://boroondaraleisure.perfectgym.com.au/ClientPortal2/ClubZoneOccupancyCalendar/3a1132fc5"},
			{ID: "darebin", Name: "Darebin", URL: "https://darebin.perfectgym.com.au/ClientPortal2/ClubZoneOccupancyCalendar/09869a3c4"},
			{ID: "sportslink", Name: "Sportslink", URL: "https://aqualink.perfectgym.com.au/ClientPortal2/ClubZoneOccupancyCalendar/3ce734397"},
			{ID: "carltonbaths", Name: "Carlton Baths", URL: "https://activemelbourne-ymca.perfectgym.com/ClientPortal2/ClubZoneOccupancyCalendar/894234c91"},
			{ID: "macleod", Name: "Macleod", URL: "https://mrfc.perfectgym.com.au/ClientPortal2/ClubZoneOccupancyCalendar/36b6925a1"},
			{ID: "aqualink", Name: "Aqualink", URL: "https://aqualink.perfectgym.com.au/ClientPortal2/ClubZoneOccupancyCalendar/6b1539a68"},
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Scrape.MaxWorkers = n
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Scrape.DataDir = v
	}
}

func (c *Config) validate() error {
	if len(c.Venues) == 0 {
		return fmt.Errorf("no venues configured")
	}
	seen := make(map[string]bool, len(c.Venues))
	for _, v := range c.Venues {
		if v.ID == "" || v.URL == "" {
			return fmt.Errorf("venue %q: id and url are required", v.Name)
		}
		if seen[v.ID] {
			return fmt.Errorf("duplicate venue id %q", v.ID)
		}
		seen[v.ID] = true
		if !scraper.KnownLayout(v.Layout) {
			return fmt.Errorf("venue %q: unknown layout %q", v.ID, v.Layout)
		}
	}
	if c.Scrape.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured source timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Scrape.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Scrape.Timezone, err)
	}
	return loc, nil
}

// ScraperVenues converts the venue entries to the scraper's venue type.
func (c *Config) ScraperVenues() []scraper.Venue {
	venues := make([]scraper.Venue, 0, len(c.Venues))
	for _, v := range c.Venues {
		name := v.Name
		if name == "" {
			name = v.ID
		}
		layout := scraper.Layout(v.Layout)
		if layout == "" {
			layout = scraper.LayoutGrid
		}
		venues = append(venues, scraper.Venue{
			ID:     v.ID,
			Name:   name,
			URL:    v.URL,
			Layout: layout,
			Courts: v.Courts,
		})
	}
	return venues
}
