package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/mabry1985/albion-killbot/internal/battle"
	"github.com/mabry1985/albion-killbot/internal/feed"
	"github.com/mabry1985/albion-killbot/internal/metrics"
	logpkg "github.com/mabry1985/albion-killbot/pkg/log"
)

// Feed is the page source driven by the controller.
type Feed interface {
	FetchPage(ctx context.Context, offset, limit int) ([]battle.Battle, error)
}

// Store is the subset of the battle store the controller needs.
type Store interface {
	LatestID(ctx context.Context) (int64, error)
	InsertNew(ctx context.Context, battles []battle.Battle) (int, error)
	PruneBelowNewestRead(ctx context.Context) (int, error)
}

// Options tunes a catch-up cycle.
type Options struct {
	// PageSize is the feed page size. Defaults to 51.
	PageSize int
	// MaxOffset bounds pagination depth: the controller never fetches at an
	// offset >= MaxOffset. Defaults to 1000. Prefers bounded work over
	// unbounded catch-up on a degenerate first sync or upstream anomaly.
	MaxOffset int
	// RetryBackoff is the fixed delay before retrying a failed page fetch.
	// Defaults to 5s.
	RetryBackoff time.Duration
	// MaxRetries bounds transport retries per offset. 0 retries forever,
	// matching the original at-least-eventually policy; production configs
	// should set a bound so a sustained outage cannot stall a cycle.
	MaxRetries int
}

func (o *Options) applyDefaults() {
	if o.PageSize <= 0 {
		o.PageSize = 51
	}
	if o.MaxOffset <= 0 {
		o.MaxOffset = 1000
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 5 * time.Second
	}
}

// Report summarizes one catch-up cycle.
type Report struct {
	Mark     int64 // high-water mark at cycle start
	Pages    int
	Fetched  int // battles accepted from the feed
	Inserted int
	Pruned   int
}

// Controller synchronizes all battles newer than the store's high-water mark.
type Controller struct {
	feed    Feed
	store   Store
	opts    Options
	logger  logpkg.Logger
	metrics *metrics.Metrics
}

// New creates a Controller. Metrics may be nil.
func New(f Feed, s Store, opts Options, logger logpkg.Logger, m *metrics.Metrics) *Controller {
	opts.applyDefaults()
	return &Controller{
		feed:    f,
		store:   s,
		opts:    opts,
		logger:  logger.With(logpkg.Component("ingest")),
		metrics: m,
	}
}

// Sync runs one catch-up cycle: page newest-first from offset 0 until the
// high-water mark is found (or the offset bound is hit), insert the accepted
// battles oldest-first, then prune read history.
func (c *Controller) Sync(ctx context.Context) (Report, error) {
	mark, err := c.store.LatestID(ctx)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Mark: mark}

	// Pages are newest-first and later pages are older still, so collecting
	// accepted battles in scan order and reversing once yields oldest-first.
	var accepted []battle.Battle
	boundaryFound := false
	for offset := 0; offset < c.opts.MaxOffset && !boundaryFound; offset += c.opts.PageSize {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return rep, err
		}
		rep.Pages++
		if c.metrics != nil {
			c.metrics.PagesFetched.Inc()
		}
		if len(page) == 0 {
			break
		}
		for _, b := range page {
			if b.ID <= mark {
				boundaryFound = true
				break
			}
			accepted = append(accepted, b)
		}
	}
	if !boundaryFound && mark > 0 {
		c.logger.Warn("pagination bound reached before high-water mark",
			logpkg.Int64("mark", mark), logpkg.Int("maxOffset", c.opts.MaxOffset))
	}

	reverse(accepted)
	rep.Fetched = len(accepted)

	inserted, err := c.store.InsertNew(ctx, accepted)
	if err != nil {
		return rep, err
	}
	rep.Inserted = inserted
	if c.metrics != nil {
		c.metrics.BattlesIngested.Add(float64(inserted))
	}

	pruned, err := c.store.PruneBelowNewestRead(ctx)
	if err != nil {
		return rep, err
	}
	rep.Pruned = pruned
	if c.metrics != nil {
		c.metrics.BattlesPruned.Add(float64(pruned))
	}

	c.logger.Info("sync complete",
		logpkg.Int64("mark", rep.Mark),
		logpkg.Int("pages", rep.Pages),
		logpkg.Int("fetched", rep.Fetched),
		logpkg.Int("inserted", rep.Inserted),
		logpkg.Int("pruned", rep.Pruned))
	return rep, nil
}

// fetchPage fetches one page, retrying transport failures at the SAME offset
// with a fixed backoff. Only context cancellation or an exhausted retry
// budget surfaces an error.
func (c *Controller) fetchPage(ctx context.Context, offset int) ([]battle.Battle, error) {
	attempts := 0
	for {
		page, err := c.feed.FetchPage(ctx, offset, c.opts.PageSize)
		if err == nil {
			return page, nil
		}
		var te *feed.TransportError
		if !errors.As(err, &te) {
			return nil, err
		}
		attempts++
		if c.metrics != nil {
			c.metrics.FetchRetries.Inc()
		}
		c.logger.Warn("page fetch failed, retrying",
			logpkg.Int("offset", offset),
			logpkg.Int("attempt", attempts),
			logpkg.Dur("backoff", c.opts.RetryBackoff),
			logpkg.Err(err))
		if c.opts.MaxRetries > 0 && attempts >= c.opts.MaxRetries {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.opts.RetryBackoff):
		}
	}
}

func reverse(battles []battle.Battle) {
	for i, j := 0, len(battles)-1; i < j; i, j = i+1, j-1 {
		battles[i], battles[j] = battles[j], battles[i]
	}
}
