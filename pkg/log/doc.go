// Package log provides the structured logging surface used by killbot
// components. It is a thin layer over log/slog with typed field helpers
// so call sites stay compact:
//
//	logger := log.New(log.WithLevel(log.InfoLevel), log.WithFormat("text"))
//	logger = logger.With(log.Component("ingest"))
//	logger.Info("synced", log.Int("inserted", n), log.Int64("latest", id))
package log
