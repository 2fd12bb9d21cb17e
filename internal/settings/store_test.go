// File: internal/settings/store_test.go
package settings

import (
	"context"
	"testing"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/config"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{DefaultLanguage: "en"}
	return NewStore(storage.NewMemoryScopes(), cfg, zap.NewNop())
}

func TestLanguageDefaultsWhenUnset(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, "en", s.Language(context.Background()))
}

func TestSetLanguage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, lang := range []string{"en", "ar", "ka", "ru", "tr"} {
		require.NoError(t, s.SetLanguage(ctx, lang))
		assert.Equal(t, lang, s.Language(ctx))
	}

	err := s.SetLanguage(ctx, "fr")
	assert.ErrorIs(t, err, common.ErrBadRequest)
	assert.Equal(t, "tr", s.Language(ctx))
}

func TestWelcomeFlags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.False(t, s.WelcomeShown(ctx, "acct-1"))
	require.NoError(t, s.MarkWelcomeShown(ctx, "acct-1"))
	assert.True(t, s.WelcomeShown(ctx, "acct-1"))

	// Flags are per account.
	assert.False(t, s.WelcomeShown(ctx, "acct-2"))
}
