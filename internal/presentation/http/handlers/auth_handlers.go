package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/audiencelab/redditpulse/internal/application/services"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
)

// AuthHandlers contains authentication HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger) *AuthHandlers {
	return &AuthHandlers{authService: authService, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleLogin handles POST /api/v1/auth/login
func (h *AuthHandlers) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "username": req.Username})
}
