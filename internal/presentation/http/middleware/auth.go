// Package middleware provides HTTP middleware for the presentation layer.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/audiencelab/redditpulse/internal/application/services"
)

const usernameKey = "username"

// RequestIDMiddleware assigns every request a unique id for log correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestId", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// AuthMiddleware validates the bearer token and stores the authenticated
// Reddit username on the request context.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		username, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// GetUsername returns the authenticated Reddit username set by AuthMiddleware.
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(usernameKey)
	if !exists {
		return "", false
	}
	name, ok := username.(string)
	return name, ok && name != ""
}
