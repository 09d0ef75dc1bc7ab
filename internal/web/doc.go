// Package web serves court availability over HTTP.
//
// All data endpoints read the snapshot from storage on each request, so
// the server and a background refresh never share in-memory state; the
// atomic snapshot replacement in the storage layer keeps reads
// consistent. POST /api/refresh goes through the refresh coordinator,
// which admits one run at a time and turns concurrent triggers into 409s.
package web
