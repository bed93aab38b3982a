package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/performance"
	"github.com/audiencelab/redditpulse/internal/infrastructure/persistence/database"
)

// HealthHandlers contains liveness and diagnostics handlers
type HealthHandlers struct {
	db          *database.DB
	perfTracker *performance.Tracker
	started     time.Time
}

// NewHealthHandlers creates health handlers with injected dependencies
func NewHealthHandlers(db *database.DB, perfTracker *performance.Tracker) *HealthHandlers {
	return &HealthHandlers{db: db, perfTracker: perfTracker, started: time.Now()}
}

// HandleHealth handles GET /api/v1/health
func (h *HealthHandlers) HandleHealth(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if err := h.db.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"uptime": time.Since(h.started).String(),
	})
}

// HandlePerfStats handles GET /api/v1/health/performance
func (h *HealthHandlers) HandlePerfStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.perfTracker.Stats())
}
