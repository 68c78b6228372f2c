// Package scheduler runs the periodic treasury refresh jobs on cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/config"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/service"
)

// Source is the activity log source of every command issued by a job.
const Source = "scheduler"

const jobTimeout = 2 * time.Minute

// MarketRefresher redraws the market signals.
type MarketRefresher interface {
	RefreshMarket(ctx context.Context) (model.MarketIntelligence, error)
}

// AnalyticsComputer recomputes risk, forecasts and anomalies.
type AnalyticsComputer interface {
	Compute(ctx context.Context) (model.AnalyticsResult, error)
}

// WalletSyncer reads the connected wallet's holdings.
type WalletSyncer interface {
	Sync(ctx context.Context) (service.WalletState, error)
}

// Jobs are the commands the scheduler drives. A nil job is never scheduled.
type Jobs struct {
	Market    MarketRefresher
	Analytics AnalyticsComputer
	Wallet    WalletSyncer
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron *cron.Cron
	jobs Jobs
}

// New registers every job with its schedule. An invalid cron spec is an error.
func New(cfg config.SchedulerConfig, jobs Jobs) (*Scheduler, error) {
	logger := cronLogger{}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		jobs: jobs,
	}

	entries := []struct {
		name string
		spec string
		run  func(context.Context) error
		set  bool
	}{
		{"market", cfg.Market, s.refreshMarket, jobs.Market != nil},
		{"analytics", cfg.Analytics, s.computeAnalytics, jobs.Analytics != nil},
		{"wallet", cfg.Wallet, s.syncWallet, jobs.Wallet != nil},
	}
	for _, e := range entries {
		if !e.set || e.spec == "" {
			continue
		}
		name, run := e.name, e.run
		if _, err := s.cron.AddFunc(e.spec, func() { runJob(name, run) }); err != nil {
			return nil, fmt.Errorf("invalid %s schedule %q: %w", name, e.spec, err)
		}
	}
	return s, nil
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", s.Len())
}

// Stop halts scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow refreshes everything once: the market signals and the wallet concurrently, then the
// analytics over the result.
func (s *Scheduler) RunNow(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	if s.jobs.Market != nil {
		g.Go(func() error { return s.refreshMarket(gctx) })
	}
	if s.jobs.Wallet != nil {
		g.Go(func() error { return s.syncWallet(gctx) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if s.jobs.Analytics != nil {
		return s.computeAnalytics(ctx)
	}
	return nil
}

func runJob(name string, run func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := run(ctx); err != nil {
		slog.Error("scheduled job failed", "job", name, "error", err)
		return
	}
	slog.Debug("scheduled job finished", "job", name, "duration", time.Since(start))
}

func (s *Scheduler) refreshMarket(ctx context.Context) error {
	_, err := s.jobs.Market.RefreshMarket(service.WithSource(ctx, Source))
	return err
}

func (s *Scheduler) computeAnalytics(ctx context.Context) error {
	_, err := s.jobs.Analytics.Compute(service.WithSource(ctx, Source))
	return err
}

// syncWallet treats a missing or unsupported wallet as nothing to do.
func (s *Scheduler) syncWallet(ctx context.Context) error {
	_, err := s.jobs.Wallet.Sync(service.WithSource(ctx, Source))
	if errors.Is(err, apperrors.ErrWalletNotConnected) || errors.Is(err, apperrors.ErrUnsupportedChain) {
		slog.Debug("wallet sync skipped", "reason", err)
		return nil
	}
	return err
}

// cronLogger routes cron's own messages through slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
