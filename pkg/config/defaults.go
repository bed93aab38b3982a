// Package config provides centralized default values for RedditPulse
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded configuration overrides from .env file")
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database
	DBDriver                 string
	DBDataSource             string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	SlowQueryThreshold       time.Duration

	// Reddit Fetcher
	RedditBaseURL        string
	RedditUserAgent      string
	RedditRequestTimeout time.Duration
	RedditListingLimit   int

	// Analytics
	StalenessWindow    time.Duration
	ChartWindowDays    int
	TopSubredditLimit  int
	RefreshSweepSpec   string
	RefreshSweepWindow time.Duration

	// Auth
	JWTSecret         string
	AdminPasswordHash string
	TokenLifetime     time.Duration
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database
	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBDataSource = getEnvString("DB_DATA_SOURCE", "redditpulse.db")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 50*time.Millisecond)

	// Reddit Fetcher
	RedditBaseURL = getEnvString("REDDIT_BASE_URL", "https://www.reddit.com")
	RedditUserAgent = getEnvString("REDDIT_USER_AGENT", "redditpulse/1.0 (marketing dashboard analytics)")
	RedditRequestTimeout = getEnvDuration("REDDIT_REQUEST_TIMEOUT", 10*time.Second)
	RedditListingLimit = getEnvInt("REDDIT_LISTING_LIMIT", 100)

	// Analytics
	StalenessWindow = time.Duration(getEnvInt("STALENESS_WINDOW_MINUTES", 5)) * time.Minute
	ChartWindowDays = getEnvInt("CHART_WINDOW_DAYS", 30)
	TopSubredditLimit = getEnvInt("TOP_SUBREDDIT_LIMIT", 8)
	RefreshSweepSpec = getEnvString("REFRESH_SWEEP_SPEC", "@every 10m")
	RefreshSweepWindow = getEnvDuration("REFRESH_SWEEP_WINDOW", 24*time.Hour)

	// Auth
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminPasswordHash = getEnvString("ADMIN_PASSWORD_HASH", "")
	TokenLifetime = getEnvDuration("TOKEN_LIFETIME", 24*time.Hour)
}
