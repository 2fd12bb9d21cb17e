// File: internal/auth/token_test.go
package auth

import (
	"testing"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/account"
	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	cfg := &config.Config{SessionTokenSecret: "test-secret", SessionTokenTTL: ttl}
	svc, err := NewTokenService(cfg, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	acct := &account.Account{ID: "acct-1", Email: "nino@example.com"}

	token, expiresAt, err := svc.Generate(acct)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, "nino@example.com", claims.Email)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, time.Hour)
	token, _, err := issuer.Generate(&account.Account{ID: "acct-1"})
	require.NoError(t, err)

	cfg := &config.Config{SessionTokenSecret: "other-secret", SessionTokenTTL: time.Hour}
	validator, err := NewTokenService(cfg, zap.NewNop())
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)
	token, _, err := svc.Generate(&account.Account{ID: "acct-1"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestEphemeralSecretWhenUnset(t *testing.T) {
	cfg := &config.Config{SessionTokenTTL: time.Hour}
	svc, err := NewTokenService(cfg, zap.NewNop())
	require.NoError(t, err)

	token, _, err := svc.Generate(&account.Account{ID: "acct-1"})
	require.NoError(t, err)
	_, err = svc.Validate(token)
	assert.NoError(t, err)
}
