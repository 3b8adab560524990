// Package coach orchestrates trigger detection, rate limiting, summary
// maintenance, and message generation for the day coach.
package coach

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/daycoach-ai/daycoach/internal/channel"
	"github.com/daycoach-ai/daycoach/internal/clock"
	"github.com/daycoach-ai/daycoach/internal/config"
	"github.com/daycoach-ai/daycoach/internal/llm"
	"github.com/daycoach-ai/daycoach/internal/logging"
	"github.com/daycoach-ai/daycoach/internal/store"
	"github.com/daycoach-ai/daycoach/internal/summary"
)

const (
	// rateLimitWindow blocks a second trigger-originated message within
	// the same rolling hour, regardless of type or date.
	rateLimitWindow = time.Hour
	// maintenanceEvery gates summary refreshes between maintenance runs.
	maintenanceEvery = 7 * 24 * time.Hour
	// ledgerRetention bounds the dedup ledger and baseline snapshots.
	ledgerRetention = 90 * 24 * time.Hour
	// summaryRetention is the age past which cached rollups are removed.
	summaryRetention = 180 * 24 * time.Hour
)

// Options configure a Coach. Store and Generator are required.
type Options struct {
	Store     store.Store
	Generator llm.Generator
	Clock     clock.Clock
	Notifier  channel.Notifier
	Config    config.CoachConfig
}

// Coach owns the trigger gate, the two schedules, and the conversation log.
// All gate-check-and-update sequences run under one mutex so racing
// triggers cannot both pass the per-type and per-hour checks.
type Coach struct {
	store     store.Store
	gen       llm.Generator
	clock     clock.Clock
	notifier  channel.Notifier
	cfg       config.CoachConfig
	refresher *summary.Refresher

	mu            sync.Mutex
	startedAt     time.Time
	lastTickCheck time.Time

	runMu    sync.Mutex
	started  bool
	cancel   context.CancelFunc
	tickDone chan struct{}
	cron     *cron.Cron
}

// New creates a Coach. Zero config fields fall back to defaults.
func New(opts Options) (*Coach, error) {
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Generator == nil {
		return nil, errors.New("generator is required")
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	cfg := opts.Config
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 5 * time.Minute
	}
	if cfg.TickMinGap <= 0 {
		cfg.TickMinGap = 30 * time.Minute
	}
	if cfg.StartupGrace < 0 {
		cfg.StartupGrace = 0
	}

	return &Coach{
		store:     opts.Store,
		gen:       opts.Generator,
		clock:     clk,
		notifier:  opts.Notifier,
		cfg:       cfg,
		refresher: summary.NewRefresher(opts.Generator),
	}, nil
}

// Start launches the tick interval and the fixed-local-hour maintenance
// schedule. It fails when the coach is already running.
func (c *Coach) Start() error {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	if c.started {
		return errors.New("coach already started")
	}

	c.mu.Lock()
	c.startedAt = c.clock.Now()
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())

	c.cron = cron.New(
		cron.WithLocation(time.Local),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	schedule := fmt.Sprintf("0 %d * * *", c.cfg.MaintenanceHour)
	if _, err := c.cron.AddFunc(schedule, func() {
		if err := c.DailyMaintenance(ctx); err != nil {
			logging.Logger().Warn("daily maintenance failed", "err", err)
		}
	}); err != nil {
		cancel()
		c.cron = nil
		return fmt.Errorf("register maintenance schedule: %w", err)
	}
	c.cron.Start()

	c.cancel = cancel
	c.tickDone = make(chan struct{})
	go c.runTicks(ctx)

	c.started = true
	logging.Logger().Info(
		"coach started",
		"tick_interval", c.cfg.TickInterval,
		"maintenance_hour", c.cfg.MaintenanceHour,
	)
	return nil
}

func (c *Coach) runTicks(ctx context.Context) {
	defer close(c.tickDone)
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.Tick(ctx); err != nil {
				logging.Logger().Warn("tick check failed", "err", err)
			}
		}
	}
}

// Stop cancels both schedules and waits for in-flight callbacks. It is
// idempotent: calling it on a stopped coach is a no-op.
func (c *Coach) Stop() {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	if !c.started {
		return
	}

	c.cancel()
	<-c.tickDone
	<-c.cron.Stop().Done()

	c.cancel = nil
	c.tickDone = nil
	c.cron = nil
	c.started = false
	logging.Logger().Info("coach stopped")
}
