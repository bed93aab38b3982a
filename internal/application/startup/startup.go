// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/audiencelab/redditpulse/internal/application/container"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/internal/infrastructure/persistence/database"
	persistence "github.com/audiencelab/redditpulse/internal/infrastructure/persistence/engagement"
	"github.com/audiencelab/redditpulse/internal/presentation/http/server"
	"github.com/audiencelab/redditpulse/pkg/config"
)

// Initialize performs the complete startup sequence and blocks until a
// shutdown signal arrives.
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	// Step 1: Channeled logging
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()
	logger.Startup().Info("Channeled logging initialized")

	// Step 2: Database connection and schema
	logger.Startup().Info("Connecting to database", "driver", config.DBDriver)
	db, err := database.NewConnectionWithLogger(config.DBDriver, config.DBDataSource, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSchema()
	if err := persistence.EnsureSchema(schemaCtx, db); err != nil {
		return fmt.Errorf("failed to apply database schema: %w", err)
	}
	logger.Startup().Info("Database ready", "dataSource", config.DBDataSource)

	// Step 3: Dependency injection container
	appContainer := container.NewContainer(logger, db)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 4: Background refresh sweep
	if err := appContainer.RefreshSweepService.Start(); err != nil {
		return fmt.Errorf("failed to start refresh sweep: %w", err)
	}

	// Step 5: HTTP server
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")
	shutdownStart := time.Now()

	appContainer.RefreshSweepService.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
