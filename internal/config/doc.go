// Package config loads killbot's configuration from a JSON or YAML file with
// KILLBOT_* environment overlays. The guilds section doubles as the backing
// data for the subscriber directory (see internal/tracking).
package config
