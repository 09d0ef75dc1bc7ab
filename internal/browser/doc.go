// Package browser provides the page-navigation capability the scrapers
// drive: navigate to a URL, wait for a selector, read rendered text and
// attributes, click period tabs.
//
// The Page interface keeps the scrapers independent of how pages are
// rendered. The production implementation runs a shared headless Chrome
// via chromedp and hands out one isolated tab per venue scrape; tests
// substitute fixture-backed pages.
package browser
