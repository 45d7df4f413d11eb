// Package ingest implements the catch-up side of the pipeline: it drives the
// feed client page by page until the store's high-water mark is reached,
// hands the accepted battles to the store oldest-first, and triggers
// retention pruning.
//
// The controller is deliberately sequential: each page's completion gates
// the next fetch, and a transport failure is retried at the same offset
// after a fixed backoff. Nothing here is fatal; a failed cycle is simply
// retried on the next tick.
package ingest
