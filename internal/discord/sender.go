package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mabry1985/albion-killbot/internal/battle"
)

// Sender delivers battle notifications as Discord embeds. It implements
// notify.Sender.
type Sender struct {
	session *discordgo.Session
}

// NewSender creates a Discord sender from a bot token. The session is used
// for REST calls only; no gateway connection is opened.
func NewSender(token string) (*Sender, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: %w", err)
	}
	return &Sender{session: session}, nil
}

// Send posts the battle embed to the given channel. The caller's context
// carries the delivery timeout.
func (s *Sender) Send(ctx context.Context, channelID string, b battle.Battle) error {
	_, err := s.session.ChannelMessageSendEmbed(channelID, Embed(b), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: send battle %d to %s: %w", b.ID, channelID, err)
	}
	return nil
}
