// Package metrics exposes Prometheus collectors for scrape and HTTP
// activity. A Metrics value carries its own registry so tests can create
// instances freely without duplicate-registration panics.
package metrics
