package notify

import (
	"context"
	"time"

	"github.com/mabry1985/albion-killbot/internal/battle"
	"github.com/mabry1985/albion-killbot/internal/match"
	"github.com/mabry1985/albion-killbot/internal/metrics"
	"github.com/mabry1985/albion-killbot/internal/tracking"
	logpkg "github.com/mabry1985/albion-killbot/pkg/log"
)

// Sender delivers one battle notification to a channel. Implementations may
// block; the notifier wraps every call with a hard timeout.
type Sender interface {
	Send(ctx context.Context, channelID string, b battle.Battle) error
}

// Store is the subset of the battle store the notifier needs.
type Store interface {
	Unread(ctx context.Context, limit int) ([]battle.Battle, error)
	MarkRead(ctx context.Context, battles []battle.Battle) (int, error)
}

// Options tunes a notification cycle.
type Options struct {
	// BatchLimit caps the unread battles pulled per cycle. Defaults to 1000.
	BatchLimit int
	// DeliveryTimeout bounds a single Send call. Defaults to 7s.
	DeliveryTimeout time.Duration
}

func (o *Options) applyDefaults() {
	if o.BatchLimit <= 0 {
		o.BatchLimit = 1000
	}
	if o.DeliveryTimeout <= 0 {
		o.DeliveryTimeout = 7 * time.Second
	}
}

// Notifier runs the matching-and-delivery side of the pipeline.
type Notifier struct {
	store     Store
	directory tracking.Directory
	sender    Sender
	opts      Options
	logger    logpkg.Logger
	metrics   *metrics.Metrics
}

// New creates a Notifier. Metrics may be nil.
func New(s Store, d tracking.Directory, sender Sender, opts Options, logger logpkg.Logger, m *metrics.Metrics) *Notifier {
	opts.applyDefaults()
	return &Notifier{
		store:     s,
		directory: d,
		sender:    sender,
		opts:      opts,
		logger:    logger.With(logpkg.Component("notify")),
		metrics:   m,
	}
}

// Run executes one notification cycle: pull the unread batch, mark it read,
// then match and deliver per guild.
//
// Marking read happens BEFORE matching and dispatch. That is the
// at-least-once / no-double-notify tradeoff: once marked, a battle is never
// reconsidered even if every delivery afterwards fails.
func (n *Notifier) Run(ctx context.Context) error {
	batch, err := n.store.Unread(ctx, n.opts.BatchLimit)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}
	if _, err := n.store.MarkRead(ctx, batch); err != nil {
		return err
	}

	guildIDs, err := n.directory.GuildIDs(ctx)
	if err != nil {
		return err
	}
	configs, err := n.directory.Configs(ctx, guildIDs)
	if err != nil {
		return err
	}

	for _, guildID := range guildIDs {
		cfg := configs[guildID]
		matched := match.ForGuild(batch, cfg)
		if len(matched) == 0 {
			continue
		}
		filter, err := match.NewFilter(cfg.Filter)
		if err != nil {
			// a broken filter must not silence the guild entirely
			n.logger.Warn("invalid guild filter, ignoring",
				logpkg.Str("guild", guildID), logpkg.Err(err))
			filter = match.Filter{}
		}
		matched = filter.Apply(matched)
		n.dispatch(ctx, guildID, cfg.ChannelID, matched)
	}
	if n.metrics != nil {
		n.metrics.NotificationCycles.Inc()
	}
	return nil
}

// dispatch delivers the guild's matched battles in order. A single failed or
// timed-out delivery is logged and skipped; it never aborts the guild's
// remaining battles.
func (n *Notifier) dispatch(ctx context.Context, guildID, channelID string, battles []battle.Battle) {
	for _, b := range battles {
		sctx, cancel := context.WithTimeout(ctx, n.opts.DeliveryTimeout)
		err := n.sender.Send(sctx, channelID, b)
		cancel()
		if err != nil {
			if n.metrics != nil {
				n.metrics.DeliveryFailures.Inc()
			}
			n.logger.Error("delivery failed",
				logpkg.Str("guild", guildID),
				logpkg.Str("channel", channelID),
				logpkg.Int64("battle", b.ID),
				logpkg.Err(err))
			continue
		}
		if n.metrics != nil {
			n.metrics.NotificationsSent.Inc()
		}
	}
}
