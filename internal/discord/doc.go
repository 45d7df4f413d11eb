// Package discord implements the outbound delivery channel over the Discord
// REST API. Rendering is intentionally minimal: one embed per battle.
package discord
