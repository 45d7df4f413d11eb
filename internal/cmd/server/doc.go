// Package serverrun exposes the shared Run entrypoint used by the CLI to
// start the killbot service: the ingestion and notification loops and the
// admin HTTP server, with lifecycle and shutdown handling.
package serverrun
