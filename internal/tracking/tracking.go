package tracking

import (
	"context"
	"sort"
)

// Config is the per-guild tracking configuration: which entity ids the guild
// wants notifications for, where to deliver them, and an optional filter
// expression applied on top of entity matching.
type Config struct {
	ChannelID string   `json:"channelId" yaml:"channel"`
	Players   []string `json:"players" yaml:"players"`
	Guilds    []string `json:"guilds" yaml:"guilds"`
	Alliances []string `json:"alliances" yaml:"alliances"`
	// Filter is a CEL expression (see internal/match). Empty means no
	// additional filtering.
	Filter string `json:"filter" yaml:"filter"`
}

// Directory resolves guild ids to tracking configurations.
type Directory interface {
	// GuildIDs lists the active guild ids in a stable order.
	GuildIDs(ctx context.Context) ([]string, error)
	// Configs returns the configuration per guild id. Guilds without a
	// configuration are absent from the result; that is not an error.
	Configs(ctx context.Context, guildIDs []string) (map[string]*Config, error)
}

// StaticDirectory is a Directory backed by an in-process map, typically
// loaded from the service configuration file.
type StaticDirectory struct {
	configs map[string]*Config
}

// NewStaticDirectory builds a directory from a guild-id to config map.
func NewStaticDirectory(configs map[string]*Config) *StaticDirectory {
	cp := make(map[string]*Config, len(configs))
	for id, cfg := range configs {
		cp[id] = cfg
	}
	return &StaticDirectory{configs: cp}
}

// GuildIDs returns the configured guild ids sorted lexicographically.
func (d *StaticDirectory) GuildIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(d.configs))
	for id := range d.configs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Configs returns configurations for the requested guild ids.
func (d *StaticDirectory) Configs(ctx context.Context, guildIDs []string) (map[string]*Config, error) {
	out := make(map[string]*Config, len(guildIDs))
	for _, id := range guildIDs {
		if cfg, ok := d.configs[id]; ok && cfg != nil {
			out[id] = cfg
		}
	}
	return out, nil
}
