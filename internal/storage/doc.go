// Package storage provides JSON-based persistence for availability
// snapshots.
//
// One snapshot file (availability.json) holds the latest complete scrape
// cycle. Saves go through a temp file and an atomic rename, so a reader
// loading concurrently with a refresh always sees either the previous or
// the new snapshot, never a torn one. Loading with no file present
// returns an empty snapshot.
package storage
