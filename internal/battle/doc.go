// Package battle defines the battle record shared by the feed client, the
// store, and matching. Records are encoded as JSON both in the upstream feed
// and at rest.
package battle
