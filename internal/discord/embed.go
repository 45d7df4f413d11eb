package discord

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mabry1985/albion-killbot/internal/battle"
)

const (
	embedColor    = 0xc13114
	battleBaseURL = "https://albionbattles.com/battles"
	maxNames      = 10
)

// Embed renders a battle as a compact Discord embed.
func Embed(b battle.Battle) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Battle #%d", b.ID),
		URL:   fmt.Sprintf("%s/%d", battleBaseURL, b.ID),
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Fame", Value: fmt.Sprintf("%d", b.TotalFame), Inline: true},
			{Name: "Kills", Value: fmt.Sprintf("%d", b.TotalKills), Inline: true},
			{Name: "Players", Value: fmt.Sprintf("%d", len(b.Players)), Inline: true},
		},
	}
	if !b.StartTime.IsZero() {
		e.Timestamp = b.StartTime.UTC().Format(time.RFC3339)
	}
	if names := participantNames(b.Guilds); names != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: "Guilds", Value: names})
	}
	return e
}

func participantNames(participants map[string]battle.Participant) string {
	if len(participants) == 0 {
		return ""
	}
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	if len(names) > maxNames {
		names = append(names[:maxNames], fmt.Sprintf("and %d more", len(names)-maxNames))
	}
	return strings.Join(names, ", ")
}
