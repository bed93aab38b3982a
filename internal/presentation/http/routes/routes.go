// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/audiencelab/redditpulse/internal/application/container"
	"github.com/audiencelab/redditpulse/internal/presentation/http/handlers"
	"github.com/audiencelab/redditpulse/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	// Initialize handlers
	analyticsHandlers := handlers.NewAnalyticsHandlers(container.AnalyticsService, container.Logger)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger)
	contentHandlers := handlers.NewContentHandlers(container.Repo, container.Logger)
	healthHandlers := handlers.NewHealthHandlers(container.DB, container.PerfTracker)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandlers.HandleHealth)
		api.POST("/auth/login", authHandlers.HandleLogin)

		authenticated := api.Group("")
		authenticated.Use(middleware.AuthMiddleware(container.AuthService))
		{
			authenticated.GET("/analytics/comments", analyticsHandlers.HandleCommentAnalytics)
			authenticated.GET("/analytics/posts", analyticsHandlers.HandlePostAnalytics)

			authenticated.GET("/content/comments", contentHandlers.HandleListComments)
			authenticated.POST("/content/comments", contentHandlers.HandleArchiveComment)
			authenticated.GET("/content/posts", contentHandlers.HandleListPosts)
			authenticated.POST("/content/posts", contentHandlers.HandleSavePost)

			authenticated.GET("/health/performance", healthHandlers.HandlePerfStats)
		}
	}

	return r
}
