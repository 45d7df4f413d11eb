// Package tracking defines the subscriber directory: per-guild tracked
// entity sets and delivery targets. The directory is read-only input to
// matching; killbot ships a config-file-backed implementation.
package tracking
