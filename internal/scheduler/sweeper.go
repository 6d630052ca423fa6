package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/executor"
	"github.com/rs/zerolog"
)

const DefaultInterval = 24 * time.Hour

// PendingAnalyzer analyzes every stored conversation without a report.
type PendingAnalyzer interface {
	AnalyzePending(ctx context.Context) (executor.SweepSummary, error)
}

// Sweeper runs AnalyzePending on a fixed interval.
type Sweeper struct {
	analyzer PendingAnalyzer
	interval time.Duration
	running  atomic.Bool
	logger   *zerolog.Logger
}

func NewSweeper(analyzer PendingAnalyzer, interval time.Duration, logger *zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		analyzer: analyzer,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
// A tick that fires while a sweep is still running is skipped.
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("Sweeper started")

	s.trigger(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

// trigger starts a sweep unless one is already in flight.
func (s *Sweeper) trigger(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn().Msg("Previous sweep still running, skipping")
		return
	}

	go func() {
		defer s.running.Store(false)
		s.sweep(ctx)
	}()
}

func (s *Sweeper) sweep(ctx context.Context) {
	start := time.Now()
	summary, err := s.analyzer.AnalyzePending(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error().Err(err).Msg("Sweep failed")
		return
	}

	s.logger.Info().
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Dur("duration", time.Since(start)).
		Msg("Sweep complete")
}

// Running reports whether a sweep is in flight.
func (s *Sweeper) Running() bool {
	return s.running.Load()
}
