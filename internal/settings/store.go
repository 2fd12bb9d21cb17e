// File: internal/settings/store.go

// Package settings holds small per-installation preferences: the UI
// language and the per-account one-time welcome flags.
package settings

import (
	"context"
	"sync"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/config"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"go.uber.org/zap"
)

// SupportedLanguages lists the UI languages the client ships translations for.
var SupportedLanguages = []string{"en", "ar", "ka", "ru", "tr"}

// Store reads and writes preference keys.
type Store struct {
	mu     sync.Mutex
	scopes *storage.Scopes
	cfg    *config.Config
	logger *zap.Logger
}

// NewStore creates the preferences store.
func NewStore(scopes *storage.Scopes, cfg *config.Config, logger *zap.Logger) *Store {
	return &Store{scopes: scopes, cfg: cfg, logger: logger}
}

// Language returns the saved UI language, falling back to the configured
// default when unset or unreadable.
func (s *Store) Language(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found, err := s.scopes.Durable.Get(ctx, storage.KeyLanguage)
	if err != nil {
		s.logger.Warn("Failed to read language preference, using default", zap.Error(err))
		return s.cfg.DefaultLanguage
	}
	if !found || !isSupported(value) {
		return s.cfg.DefaultLanguage
	}
	return value
}

// SetLanguage saves the UI language.
func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	if !isSupported(lang) {
		return common.ErrBadRequest.WithDetails("Unsupported language: " + lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scopes.Durable.Set(ctx, storage.KeyLanguage, lang); err != nil {
		s.logger.Error("Failed to persist language preference", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not save language preference.")
	}
	return nil
}

// WelcomeShown reports whether the welcome modal was already shown to an
// account on this installation.
func (s *Store) WelcomeShown(ctx context.Context, accountID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, found, err := s.scopes.Durable.Get(ctx, storage.WelcomeShownKey(accountID))
	if err != nil {
		s.logger.Warn("Failed to read welcome flag", zap.String("accountId", accountID), zap.Error(err))
		return false
	}
	return found
}

// MarkWelcomeShown records that the account has seen the welcome modal, so
// it never reappears for them here.
func (s *Store) MarkWelcomeShown(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scopes.Durable.Set(ctx, storage.WelcomeShownKey(accountID), "true"); err != nil {
		s.logger.Error("Failed to persist welcome flag", zap.String("accountId", accountID), zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not save welcome flag.")
	}
	return nil
}

func isSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
