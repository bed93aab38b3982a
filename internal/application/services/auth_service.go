package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/pkg/config"
)

// AuthService issues and validates the dashboard's bearer tokens. A token's
// subject is the Reddit username whose analytics it grants access to.
type AuthService struct {
	jwtSecret     []byte
	passwordHash  string
	tokenLifetime time.Duration
	logger        *logging.ChanneledLogger
}

// AuthClaims is the JWT payload for dashboard sessions.
type AuthClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewAuthService creates the auth service from configuration.
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(config.JWTSecret),
		passwordHash:  config.AdminPasswordHash,
		tokenLifetime: config.TokenLifetime,
		logger:        logger,
	}
}

// Login verifies the dashboard password and returns a signed token bound to
// the given Reddit username.
func (s *AuthService) Login(username, password string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	if s.passwordHash == "" {
		return "", fmt.Errorf("no dashboard password configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.logger.Auth().Warn("Login rejected", "username", username)
		return "", fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	claims := AuthClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Auth().Info("Login succeeded", "username", username)
	return token, nil
}

// ValidateToken parses a bearer token and returns the Reddit username it was
// issued for.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.Username == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Username, nil
}
