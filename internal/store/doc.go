// Package store implements the local battle store.
//
// # Overview
//
// Records are persisted in Pebble under a lexicographically ordered keyspace
// (see keys.go) so that chronological scans are range scans. Three operations
// carry the pipeline:
//
//   - InsertNew: set-on-insert idempotent batch; duplicates never overwrite
//     an existing record's fields (in particular the read flag).
//   - Unread / MarkRead: read-state tracking. The read flag moves 0->1 only.
//   - PruneBelowNewestRead: retention. Everything strictly older than the
//     newest read battle is deleted; with no read battles nothing is safe to
//     delete yet.
//
// Write failures are logged and reported as zero-effect rather than
// propagated: every caller degrades to "try again next cycle".
package store
