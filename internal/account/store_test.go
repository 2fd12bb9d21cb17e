// File: internal/account/store_test.go
package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/config"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, *storage.Scopes) {
	t.Helper()
	scopes := storage.NewMemoryScopes()
	cfg := &config.Config{VerificationTokenTTL: 24 * time.Hour}
	return NewStore(scopes, cfg, zap.NewNop()), scopes
}

func TestRegisterCreatesAccount(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	acct, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, acct)

	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, "Nino K.", acct.Name)
	assert.False(t, acct.Verified)
	require.NotNil(t, acct.VerificationToken)
	assert.NotEmpty(t, *acct.VerificationToken)
	require.NotNil(t, acct.VerificationTokenExpires)
	assert.True(t, acct.VerificationTokenExpires.After(time.Now()))
	assert.Equal(t, []Badge{BadgeNewUser}, acct.Badges)

	assert.True(t, s.IsNew())
	current := s.Current()
	require.NotNil(t, current)
	assert.Equal(t, acct.ID, current.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)

	_, err = s.Register(ctx, "Someone Else", "nino@example.com", "different")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Equal(t, 1, s.DirectorySize(ctx))
}

func TestRegisterEmailMatchIsCaseSensitive(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)

	// The directory matches emails exactly, so a different casing registers
	// as a separate account.
	_, err = s.Register(ctx, "Nino K.", "Nino@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, 2, s.DirectorySize(ctx))
}

func TestLoginWithEmail(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	registered, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)
	s.Logout(ctx)
	require.Nil(t, s.Current())

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "correct credentials", email: "nino@example.com", password: "secret123"},
		{name: "wrong password", email: "nino@example.com", password: "nope", wantErr: common.ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@example.com", password: "secret123", wantErr: common.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct, err := s.LoginWithEmail(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, acct.ID)
			assert.False(t, s.IsNew())
		})
	}
}

func TestFailedLoginLeavesNoIdentity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)
	s.Logout(ctx)

	_, err = s.LoginWithEmail(ctx, "nino@example.com", "wrong-password")
	require.Error(t, err)
	assert.Nil(t, s.Current())
	assert.False(t, s.IsNew())
}

func TestSimulatedLatencyIsCancellable(t *testing.T) {
	scopes := storage.NewMemoryScopes()
	cfg := &config.Config{
		AuthSimulatedLatency: 5 * time.Second,
		VerificationTokenTTL: 24 * time.Hour,
	}
	s := NewStore(scopes, cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLoginWithExternalIdentity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	profile := ExternalProfile{
		ID:      "google-123",
		Name:    "Sophie B.",
		Email:   "sophie@example.com",
		Picture: "https://example.com/sophie.png",
	}

	acct, err := s.LoginWithExternalIdentity(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "google-123", acct.ID)
	assert.True(t, acct.Verified)
	require.NotNil(t, acct.Picture)
	assert.Equal(t, profile.Picture, *acct.Picture)
	assert.True(t, s.IsNew())

	// Same email again reuses the existing account without the new flag.
	s.Logout(ctx)
	again, err := s.LoginWithExternalIdentity(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, again.ID)
	assert.False(t, s.IsNew())
	assert.Equal(t, 1, s.DirectorySize(ctx))
}

func TestVerifyEmail(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	acct, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)
	token := *acct.VerificationToken

	_, err = s.VerifyEmail(ctx, "wrong-token")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)

	verified, err := s.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Nil(t, verified.VerificationToken)
	assert.Nil(t, verified.VerificationTokenExpires)

	// The token is single-use.
	_, err = s.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	scopes := storage.NewMemoryScopes()
	cfg := &config.Config{VerificationTokenTTL: -time.Hour}
	s := NewStore(scopes, cfg, zap.NewNop())
	ctx := context.Background()

	acct, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)

	_, err = s.VerifyEmail(ctx, *acct.VerificationToken)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestUpdateCurrent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Without a session the update is a quiet no-op.
	acct, err := s.UpdateCurrent(ctx, ProfileUpdate{})
	require.NoError(t, err)
	assert.Nil(t, acct)

	_, err = s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)

	newName := "Nino Kapanadze"
	avatar := "https://example.com/nino.png"
	updated, err := s.UpdateCurrent(ctx, ProfileUpdate{Name: &newName, AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, avatar, *updated.AvatarURL)

	// The directory entry was updated too: log back in and check.
	s.Logout(ctx)
	again, err := s.LoginWithEmail(ctx, "nino@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, newName, again.Name)
}

func TestIncrementReviewCount(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)

	s.IncrementReviewCount(ctx)
	s.IncrementReviewCount(ctx)
	assert.Equal(t, 2, s.Current().ReviewCount)
}

func TestSessionNeverStoresPasswordHash(t *testing.T) {
	s, scopes := newTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)

	raw, found, err := scopes.Session.Get(ctx, storage.KeySessionUser)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, strings.Contains(raw, "passwordHash"))
	assert.False(t, strings.Contains(raw, "secret123"))
}

func TestSessionRestoredByNewStore(t *testing.T) {
	s, scopes := newTestStore(t)
	ctx := context.Background()

	acct, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)

	cfg := &config.Config{VerificationTokenTTL: 24 * time.Hour}
	restored := NewStore(scopes, cfg, zap.NewNop())
	current := restored.Current()
	require.NotNil(t, current)
	assert.Equal(t, acct.ID, current.ID)
	assert.False(t, restored.IsNew())
}

func TestSweepExpiredTokens(t *testing.T) {
	scopes := storage.NewMemoryScopes()
	cfg := &config.Config{VerificationTokenTTL: -time.Hour}
	s := NewStore(scopes, cfg, zap.NewNop())
	ctx := context.Background()

	_, err := s.Register(ctx, "Nino K.", "nino@example.com", "secret123")
	require.NoError(t, err)
	s.Logout(ctx)
	_, err = s.Register(ctx, "Sophie B.", "sophie@example.com", "secret123")
	require.NoError(t, err)

	swept, err := s.SweepExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, swept)

	// A second pass finds nothing left to clear.
	swept, err = s.SweepExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, swept)
}
