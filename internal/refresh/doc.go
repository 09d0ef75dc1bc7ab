// Package refresh serializes snapshot refreshes behind a single-flight
// guard: at most one refresh runs at a time, concurrent triggers collapse
// onto the in-flight run, and the last outcome stays queryable for status
// reporting.
package refresh
