// Package handlers provides HTTP handlers for analytics endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/audiencelab/redditpulse/internal/application/services"
	"github.com/audiencelab/redditpulse/internal/domain/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/internal/presentation/http/middleware"
	"github.com/audiencelab/redditpulse/pkg/config"
)

// AnalyticsHandlers contains the analytics dashboard HTTP handlers
type AnalyticsHandlers struct {
	analyticsService *services.AnalyticsService
	logger           *logging.ChanneledLogger
}

// NewAnalyticsHandlers creates analytics handlers with injected dependencies
func NewAnalyticsHandlers(analyticsService *services.AnalyticsService, logger *logging.ChanneledLogger) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// HandleCommentAnalytics handles GET /api/v1/analytics/comments
func (h *AnalyticsHandlers) HandleCommentAnalytics(c *gin.Context) {
	h.handleAnalytics(c, services.ContentComments)
}

// HandlePostAnalytics handles GET /api/v1/analytics/posts
func (h *AnalyticsHandlers) HandlePostAnalytics(c *gin.Context) {
	h.handleAnalytics(c, services.ContentPosts)
}

func (h *AnalyticsHandlers) handleAnalytics(c *gin.Context, kind services.ContentKind) {
	start := time.Now()
	h.logger.Analytics().Debug("Received analytics request",
		"method", c.Request.Method, "path", c.Request.URL.Path)

	username, exists := middleware.GetUsername(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authenticated user not found"})
		return
	}

	forceRefresh := c.Query("refresh") == "true"

	snapshot, err := h.analyticsService.LoadAnalytics(c.Request.Context(), username, kind, forceRefresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"engagementRecords": snapshot.Records,
		"matchedContent":    snapshot.Matched,
		"metrics":           snapshot.Metrics,
		"chart":             snapshot.Chart,
	}
	if snapshot.Metrics != nil {
		response["topSubreddits"] = engagement.TopSubreddits(
			snapshot.Metrics.SubredditPerformance, config.TopSubredditLimit)
	}
	if !snapshot.LastRefresh.IsZero() {
		response["lastRefresh"] = snapshot.LastRefresh
	}

	h.logger.Analytics().Info("Analytics request completed",
		"username", username, "kind", string(kind),
		"forceRefresh", forceRefresh, "duration", time.Since(start))
	c.JSON(http.StatusOK, response)
}
