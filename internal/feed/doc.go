// Package feed implements the client for the upstream battles feed.
//
// The feed is a paginated pull API sorted newest-first:
//
//	GET {base}/battles?offset=0&limit=51&sort=recent&timestamp=<now_ms>
//
// A fetch either succeeds with a decoded page or fails with a
// *TransportError. Retry policy belongs to the caller (see internal/ingest).
package feed
