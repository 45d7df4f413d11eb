// Package notify runs the delivery side of the pipeline: it pulls the unread
// batch from the store, marks it read up front, matches it per guild, and
// delivers sequentially with a per-send timeout. Guilds are processed
// independently in the directory's order; delivery order across guilds is
// unspecified.
package notify
