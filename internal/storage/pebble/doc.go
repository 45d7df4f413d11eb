// Package pebblestore provides a thin wrapper around Pebble with a sync
// policy, batches, and point-op helpers.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{DataDir: "./data", Sync: true})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	// Atomic updates with batches
//	b := db.NewBatch()
//	_ = b.Set([]byte("k"), []byte("v"), nil)
//	_ = db.CommitBatch(b)
//	b.Close()
//
//	// Point ops
//	_ = db.Set([]byte("k2"), []byte("v2"))
//	v, _ := db.Get([]byte("k2"))
//
// Tests open the database with InMemory: true.
package pebblestore
