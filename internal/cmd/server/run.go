package serverrun

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	cfgpkg "github.com/mabry1985/albion-killbot/internal/config"
	"github.com/mabry1985/albion-killbot/internal/discord"
	"github.com/mabry1985/albion-killbot/internal/notify"
	"github.com/mabry1985/albion-killbot/internal/runtime"
	httpserver "github.com/mabry1985/albion-killbot/internal/server/http"
	logpkg "github.com/mabry1985/albion-killbot/pkg/log"
)

// Options for running the killbot service.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
}

// Run starts the ingestion and notification loops plus the admin HTTP server
// and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := opts.Logger
	if logger == nil {
		logger = logpkg.New()
	}
	cfg := opts.Config

	var sender notify.Sender
	if cfg.Discord.Token != "" {
		ds, err := discord.NewSender(cfg.Discord.Token)
		if err != nil {
			return err
		}
		sender = ds
	} else {
		logger.Warn("no discord token configured; notifications disabled")
	}

	rt, err := runtime.Open(runtime.Options{Config: cfg, Logger: logger, Sender: sender})
	if err != nil {
		return err
	}
	defer rt.Close()

	logger.Info("starting killbot",
		logpkg.Str("dataDir", cfg.DataDir),
		logpkg.Str("http", cfg.HTTPAddr),
		logpkg.Int("guilds", len(cfg.Guilds)))

	hsrv := httpserver.New(rt, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, cfg.HTTPAddr); err != nil && sctx.Err() == nil {
			logger.Error("http server failed", logpkg.Err(err))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		ingestLoop(sctx, rt, logger, time.Duration(cfg.Schedule.IngestIntervalSeconds)*time.Second)
	}()

	if rt.CanNotify() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			notifyLoop(sctx, rt, logger, time.Duration(cfg.Schedule.NotifyIntervalSeconds)*time.Second)
		}()
	}

	<-sctx.Done()
	hsrv.Close()
	wg.Wait()
	logger.Info("killbot stopped")
	return nil
}

func ingestLoop(ctx context.Context, rt *runtime.Runtime, logger logpkg.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := rt.Ingest(ctx); err != nil && ctx.Err() == nil {
			logger.Error("ingest cycle failed", logpkg.Err(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func notifyLoop(ctx context.Context, rt *runtime.Runtime, logger logpkg.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := rt.Notify(ctx); err != nil && ctx.Err() == nil {
			logger.Error("notification cycle failed", logpkg.Err(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
