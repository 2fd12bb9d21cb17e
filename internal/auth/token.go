// File: internal/auth/token.go

// Package auth issues and validates the session tokens handed out at login.
// The token only proves the caller owns the running session; there is no
// server-side authorization model beyond that.
package auth

import (
	"fmt"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/account"
	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/config"
	"github.com/mohdalimj86-del/yalla.ge/internal/platform/crypto"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims is the session token payload.
type Claims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and validates session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

// NewTokenService creates the service. When no secret is configured a random
// one is generated, which invalidates tokens across restarts — acceptable
// since the session scope is cleared on restart anyway.
func NewTokenService(cfg *config.Config, logger *zap.Logger) (*TokenService, error) {
	secret := cfg.SessionTokenSecret
	if secret == "" {
		generated, err := crypto.GenerateSecureRandomString(32)
		if err != nil {
			return nil, fmt.Errorf("generating session token secret: %w", err)
		}
		secret = generated
		logger.Info("SESSION_TOKEN_SECRET not set, generated an ephemeral secret")
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    cfg.SessionTokenTTL,
		logger: logger,
	}, nil
}

// Generate signs a session token for the given account.
func (t *TokenService) Generate(acct *account.Account) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(t.ttl)
	claims := Claims{
		AccountID: acct.ID,
		Email:     acct.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		t.logger.Error("Failed to sign session token", zap.Error(err))
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a session token.
func (t *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrUnauthorized.WithDetails("Invalid or expired session token.")
	}
	return claims, nil
}
