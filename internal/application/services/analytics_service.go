// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain logic.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/audiencelab/redditpulse/internal/domain/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/caching/stores"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/monitoring"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/performance"
)

// ContentKind selects which locally authored content a dashboard view
// reconciles against the engagement listing.
type ContentKind string

const (
	ContentComments ContentKind = "comment"
	ContentPosts    ContentKind = "post"
)

// AnalyticsService orchestrates one analytics pass: staleness check,
// optional refresh, store reads, reconciliation, aggregation, bucketing.
type AnalyticsService struct {
	fetcher     engagement.ProfileFetcher
	repo        engagement.Repository
	marks       *stores.RefreshMarkStore
	staleness   engagement.StalenessPolicy
	windowDays  int
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAnalyticsService creates the orchestrator with injected collaborators.
func NewAnalyticsService(
	fetcher engagement.ProfileFetcher,
	repo engagement.Repository,
	marks *stores.RefreshMarkStore,
	staleness engagement.StalenessPolicy,
	windowDays int,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *AnalyticsService {
	if windowDays <= 0 {
		windowDays = engagement.DefaultChartWindowDays
	}
	return &AnalyticsService{
		fetcher:     fetcher,
		repo:        repo,
		marks:       marks,
		staleness:   staleness,
		windowDays:  windowDays,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// LoadAnalytics produces a full analytics snapshot for one user and view.
// A failed refresh degrades to whatever the store already holds; a failed
// store read is fatal to the pass and propagates.
func (s *AnalyticsService) LoadAnalytics(ctx context.Context, userID string, kind ContentKind, forceRefresh bool) (*engagement.Snapshot, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("analytics:load", userID)
	defer marker.Complete()

	s.maybeRefresh(ctx, userID, forceRefresh)

	records, err := s.repo.ListEngagement(ctx, userID)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to read engagement store: %w", err)
	}

	items, err := s.loadContent(ctx, userID, kind)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to read content store: %w", err)
	}

	matched := engagement.MatchContent(items, records)
	metrics := engagement.Summarize(records)
	chart := engagement.BucketDaily(records, s.windowDays, time.Now().UTC())

	matchedCount := 0
	for _, m := range matched {
		if m.Engagement != nil {
			matchedCount++
		}
	}
	monitoring.MatchedContentItems.Observe(float64(matchedCount))
	monitoring.AnalyticsLoads.WithLabelValues(string(kind)).Inc()
	monitoring.AnalyticsLoadDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	var lastRefresh time.Time
	if mark, exists := s.marks.Get(userID); exists {
		lastRefresh = mark
	}

	s.logger.Analytics().Info("Analytics snapshot computed",
		"userId", userID,
		"kind", string(kind),
		"records", len(records),
		"contentItems", len(items),
		"matched", matchedCount,
		"chartBuckets", len(chart),
		"duration", time.Since(start))
	marker.SetSuccess(true)

	return &engagement.Snapshot{
		Records:     records,
		Matched:     matched,
		Metrics:     metrics,
		Chart:       chart,
		LastRefresh: lastRefresh,
	}, nil
}

// maybeRefresh triggers a profile re-fetch when forced or stale. Refresh
// failures are logged and swallowed: stale-but-available beats unavailable.
func (s *AnalyticsService) maybeRefresh(ctx context.Context, userID string, forceRefresh bool) {
	var lastRefresh *time.Time
	if mark, exists := s.marks.Get(userID); exists {
		lastRefresh = &mark
	}

	if !forceRefresh && !s.staleness.IsStale(lastRefresh) {
		return
	}

	marker := s.perfTracker.StartOperation("reddit:refresh", userID)
	defer marker.Complete()

	if err := s.fetcher.Refresh(ctx, userID); err != nil {
		marker.SetError(err)
		monitoring.RefreshesTotal.WithLabelValues("failure").Inc()
		s.logger.Reddit().Warn("Profile refresh failed, serving existing data",
			"userId", userID, "forced", forceRefresh, "error", err.Error())
		return
	}

	s.marks.Set(userID, time.Now())
	marker.SetSuccess(true)
	monitoring.RefreshesTotal.WithLabelValues("success").Inc()
}

func (s *AnalyticsService) loadContent(ctx context.Context, userID string, kind ContentKind) ([]engagement.ContentItem, error) {
	switch kind {
	case ContentPosts:
		posts, err := s.repo.ListGeneratedPosts(ctx, userID)
		if err != nil {
			return nil, err
		}
		items := make([]engagement.ContentItem, 0, len(posts))
		for _, p := range posts {
			items = append(items, p)
		}
		return items, nil
	default:
		comments, err := s.repo.ListArchivedComments(ctx, userID)
		if err != nil {
			return nil, err
		}
		items := make([]engagement.ContentItem, 0, len(comments))
		for _, c := range comments {
			items = append(items, c)
		}
		return items, nil
	}
}
