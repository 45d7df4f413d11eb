package runtime

import (
	"context"
	"errors"
	"time"

	cfgpkg "github.com/mabry1985/albion-killbot/internal/config"
	"github.com/mabry1985/albion-killbot/internal/feed"
	"github.com/mabry1985/albion-killbot/internal/ingest"
	"github.com/mabry1985/albion-killbot/internal/metrics"
	"github.com/mabry1985/albion-killbot/internal/notify"
	pebblestore "github.com/mabry1985/albion-killbot/internal/storage/pebble"
	"github.com/mabry1985/albion-killbot/internal/store"
	"github.com/mabry1985/albion-killbot/internal/tracking"
	logpkg "github.com/mabry1985/albion-killbot/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
	// InMemory backs storage with an in-memory filesystem (tests, dry runs).
	InMemory bool
	// Sender is the outbound delivery channel. When nil (e.g. no Discord
	// token configured), notification cycles are unavailable.
	Sender notify.Sender
}

// Runtime wires storage, the feed client, the subscriber directory, and the
// two pipeline stages for a single-node instance.
type Runtime struct {
	db       *pebblestore.DB
	store    *store.Store
	metrics  *metrics.Metrics
	ingestor *ingest.Controller
	notifier *notify.Notifier
}

// Open initializes the underlying storage and builds the pipeline.
func Open(opts Options) (*Runtime, error) {
	if opts.Logger == nil {
		opts.Logger = logpkg.New()
	}
	cfg := opts.Config
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:  cfg.DataDir,
		InMemory: opts.InMemory,
		Sync:     true,
	})
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	st := store.New(db, opts.Logger)
	client := feed.NewClient(feed.Options{
		BaseURL: cfg.Feed.BaseURL,
		Timeout: time.Duration(cfg.Feed.TimeoutSeconds) * time.Second,
	})
	ingestor := ingest.New(client, st, ingest.Options{
		PageSize:     cfg.Feed.PageSize,
		MaxOffset:    cfg.Feed.MaxOffset,
		RetryBackoff: time.Duration(cfg.Feed.RetryBackoffSeconds) * time.Second,
		MaxRetries:   cfg.Feed.MaxRetries,
	}, opts.Logger, m)

	rt := &Runtime{db: db, store: st, metrics: m, ingestor: ingestor}

	if opts.Sender != nil {
		directory := tracking.NewStaticDirectory(cfg.Guilds)
		rt.notifier = notify.New(st, directory, opts.Sender, notify.Options{
			BatchLimit:      cfg.Notify.BatchLimit,
			DeliveryTimeout: time.Duration(cfg.Notify.DeliveryTimeoutSeconds) * time.Second,
		}, opts.Logger, m)
	}
	return rt, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple storage health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Ingest runs one catch-up cycle.
func (r *Runtime) Ingest(ctx context.Context) (ingest.Report, error) {
	return r.ingestor.Sync(ctx)
}

// Notify runs one notification cycle.
func (r *Runtime) Notify(ctx context.Context) error {
	if r.notifier == nil {
		return errors.New("no delivery channel configured")
	}
	return r.notifier.Run(ctx)
}

// CanNotify reports whether a delivery channel is configured.
func (r *Runtime) CanNotify() bool { return r.notifier != nil }

// Store exposes the battle store for the admin surface.
func (r *Runtime) Store() *store.Store { return r.store }

// Metrics exposes the Prometheus instrumentation.
func (r *Runtime) Metrics() *metrics.Metrics { return r.metrics }
