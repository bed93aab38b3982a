package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/audiencelab/redditpulse/internal/domain/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/caching/stores"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/monitoring"
	"github.com/audiencelab/redditpulse/pkg/config"
)

// RefreshSweepService keeps recently viewed dashboards warm: on a cron
// schedule it re-fetches every user whose mark is both recent enough to
// matter and stale enough to need it.
type RefreshSweepService struct {
	fetcher   engagement.ProfileFetcher
	marks     *stores.RefreshMarkStore
	staleness engagement.StalenessPolicy
	window    time.Duration
	logger    *logging.ChanneledLogger
	cron      *cron.Cron
	entryID   cron.EntryID
}

// NewRefreshSweepService creates the sweep service. window bounds how far
// back a user's last refresh may be and still qualify for warming.
func NewRefreshSweepService(
	fetcher engagement.ProfileFetcher,
	marks *stores.RefreshMarkStore,
	staleness engagement.StalenessPolicy,
	window time.Duration,
	logger *logging.ChanneledLogger,
) *RefreshSweepService {
	return &RefreshSweepService{
		fetcher:   fetcher,
		marks:     marks,
		staleness: staleness,
		window:    window,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start registers the sweep on the configured schedule and starts the cron
// runner.
func (s *RefreshSweepService) Start() error {
	entryID, err := s.cron.AddFunc(config.RefreshSweepSpec, func() {
		s.Sweep(context.Background())
	})
	if err != nil {
		return err
	}
	s.entryID = entryID
	s.cron.Start()

	s.logger.System().Info("Refresh sweep scheduled",
		"spec", config.RefreshSweepSpec, "window", s.window)
	return nil
}

// Stop halts the cron runner and waits for any in-flight sweep to finish.
func (s *RefreshSweepService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Shutdown().Info("Refresh sweep stopped")
}

// Sweep refreshes every active user whose data has gone stale. Per-user
// failures are logged and skipped so one bad account cannot stall the rest.
func (s *RefreshSweepService) Sweep(ctx context.Context) {
	start := time.Now()
	users := s.marks.ActiveSince(start.Add(-s.window))

	refreshed := 0
	for _, userID := range users {
		mark, exists := s.marks.Get(userID)
		var lastRefresh *time.Time
		if exists {
			lastRefresh = &mark
		}
		if !s.staleness.IsStale(lastRefresh) {
			continue
		}

		if err := s.fetcher.Refresh(ctx, userID); err != nil {
			monitoring.RefreshesTotal.WithLabelValues("failure").Inc()
			s.logger.Reddit().Warn("Sweep refresh failed",
				"userId", userID, "error", err.Error())
			continue
		}
		s.marks.Set(userID, time.Now())
		monitoring.RefreshesTotal.WithLabelValues("success").Inc()
		refreshed++
	}

	if len(users) > 0 {
		s.logger.System().Info("Refresh sweep completed",
			"candidates", len(users), "refreshed", refreshed, "duration", time.Since(start))
	}
}
