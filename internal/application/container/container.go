// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/audiencelab/redditpulse/internal/application/services"
	"github.com/audiencelab/redditpulse/internal/domain/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/caching/stores"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/performance"
	"github.com/audiencelab/redditpulse/internal/infrastructure/persistence/database"
	persistence "github.com/audiencelab/redditpulse/internal/infrastructure/persistence/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/reddit"
	"github.com/audiencelab/redditpulse/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Infrastructure
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
	DB           *database.DB
	Repo         engagement.Repository
	RefreshMarks *stores.RefreshMarkStore
	Fetcher      engagement.ProfileFetcher

	// Application services (stateless singletons)
	AnalyticsService    *services.AnalyticsService
	RefreshSweepService *services.RefreshSweepService
	AuthService         *services.AuthService
}

// NewContainer creates and wires all singleton services
func NewContainer(logger *logging.ChanneledLogger, db *database.DB) *Container {
	perfTracker := performance.NewTracker()
	repo := persistence.NewSQLRepository(db, logger)
	refreshMarks := stores.NewRefreshMarkStore()
	fetcher := reddit.NewHTTPProfileFetcher(repo, logger)
	staleness := engagement.NewStalenessPolicy(config.StalenessWindow)

	return &Container{
		Logger:       logger,
		PerfTracker:  perfTracker,
		DB:           db,
		Repo:         repo,
		RefreshMarks: refreshMarks,
		Fetcher:      fetcher,

		AnalyticsService: services.NewAnalyticsService(
			fetcher, repo, refreshMarks, staleness, config.ChartWindowDays, logger, perfTracker),
		RefreshSweepService: services.NewRefreshSweepService(
			fetcher, refreshMarks, staleness, config.RefreshSweepWindow, logger),
		AuthService: services.NewAuthService(logger),
	}
}
