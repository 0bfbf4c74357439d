// Package ingest orchestrates catalog synchronization across supplier feeds.
//
// Suppliers run concurrently; records within one supplier run sequentially so
// each record's identity lookup observes the previous record's write. One bad
// record never aborts a batch: per-record failures are counted and reported,
// and a supplier whose feed is unreachable fails alone without touching the
// other suppliers' runs.
package ingest
