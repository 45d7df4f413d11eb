package match

import (
	"github.com/mabry1985/albion-killbot/internal/battle"
	"github.com/mabry1985/albion-killbot/internal/tracking"
)

// ForGuild returns the battles relevant to one guild's tracking
// configuration, preserving the input's oldest-first order.
//
// A battle is relevant when any participating player, guild, or alliance id
// is tracked. Battles with non-positive total fame are never relevant; they
// are stored but not notification candidates. A nil configuration yields an
// empty result.
func ForGuild(battles []battle.Battle, cfg *tracking.Config) []battle.Battle {
	if cfg == nil {
		return nil
	}
	players := asSet(cfg.Players)
	guilds := asSet(cfg.Guilds)
	alliances := asSet(cfg.Alliances)

	var out []battle.Battle
	for _, b := range battles {
		if b.TotalFame <= 0 {
			continue
		}
		if intersects(b.Players, players) ||
			intersects(b.Guilds, guilds) ||
			intersects(b.Alliances, alliances) {
			out = append(out, b)
		}
	}
	return out
}

func asSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func intersects(participants map[string]battle.Participant, tracked map[string]struct{}) bool {
	if len(tracked) == 0 || len(participants) == 0 {
		return false
	}
	for id := range participants {
		if _, ok := tracked[id]; ok {
			return true
		}
	}
	return false
}
