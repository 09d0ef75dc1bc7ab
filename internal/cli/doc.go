// Package cli implements the courtwatch command tree: serve runs the
// scraper behind the HTTP API, scrape runs one cycle and prints it, and
// venues lists the configured venues.
package cli
