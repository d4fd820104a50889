package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Poller periodically refreshes the report service snapshot so dashboards
// pick up upstream changes without a page reload. Overlapping ticks are
// skipped: a tick that arrives while a refresh is still running does
// nothing.
type Poller struct {
	reports  *ReportService
	interval time.Duration
	logger   *zap.Logger

	cron *cron.Cron

	mu       sync.Mutex
	inFlight bool
}

// NewPoller creates a Poller. Intervals below one second are rounded up so
// the cron spec stays valid.
func NewPoller(reports *ReportService, interval time.Duration, logger *zap.Logger) *Poller {
	if interval < time.Second {
		interval = time.Second
	}
	return &Poller{
		reports:  reports,
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the recurring refresh and performs one immediately so
// the first request never sees an empty snapshot.
func (p *Poller) Start() error {
	p.cron = cron.New()
	spec := fmt.Sprintf("@every %s", p.interval)
	if _, err := p.cron.AddFunc(spec, p.tick); err != nil {
		return fmt.Errorf("failed to schedule report poller: %w", err)
	}
	p.cron.Start()
	p.logger.Info("report poller started", zap.Duration("interval", p.interval))

	go p.tick()
	return nil
}

// Stop halts the scheduler and waits for a running tick to finish.
func (p *Poller) Stop() {
	if p.cron == nil {
		return
	}
	ctx := p.cron.Stop()
	<-ctx.Done()
	p.logger.Info("report poller stopped")
}

func (p *Poller) tick() {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		p.logger.Debug("skipping poll tick, refresh still in flight")
		return
	}
	p.inFlight = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	if err := p.reports.Refresh(ctx); err != nil {
		p.logger.Warn("scheduled report refresh failed", zap.Error(err))
	}
}
