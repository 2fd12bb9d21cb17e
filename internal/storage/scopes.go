// File: internal/storage/scopes.go
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/mohdalimj86-del/yalla.ge/internal/config"

	"go.uber.org/zap"
)

// Persisted keys. These match the original browser client's storage layout so
// an exported state dump remains recognizable.
const (
	KeySessionUser   = "user"
	KeyUsersDB       = "yalla_users_db"
	KeyUserListings  = "userListings"
	KeyConversations = "userConversations"
	KeyMessages      = "userMessages"
	KeyNotifications = "userNotifications"
	KeyLanguage      = "language"

	// KeyWelcomeShownPrefix is followed by the account id.
	KeyWelcomeShownPrefix = "welcome_shown_"
)

// Scopes bundles the two storage scopes every store depends on.
type Scopes struct {
	// Session holds state that lives only for this process run, e.g. the
	// current identity. Always in memory.
	Session Store
	// Durable holds state that survives restarts.
	Durable Store
}

// NewScopes builds the storage scopes from configuration. The returned
// cleanup closes the durable backend.
func NewScopes(cfg *config.Config, logger *zap.Logger) (*Scopes, func(), error) {
	session := NewMemoryStore()

	var durable Store
	switch cfg.StorageBackend {
	case "memory":
		durable = NewMemoryStore()
	case "badger":
		store, err := NewBadgerStore(cfg.DataDir, logger)
		if err != nil {
			return nil, nil, err
		}
		durable = store
	case "redis":
		store, err := NewRedisStore(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Redis store connected", zap.String("addr", cfg.RedisAddr))
		durable = store
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	cleanup := func() {
		if closer, ok := durable.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Error("Failed to close durable store", zap.Error(err))
			}
		}
	}
	return &Scopes{Session: session, Durable: durable}, cleanup, nil
}

// NewMemoryScopes returns scopes backed entirely by memory. Used by tests.
func NewMemoryScopes() *Scopes {
	return &Scopes{Session: NewMemoryStore(), Durable: NewMemoryStore()}
}

// WelcomeShownKey returns the per-account durable key gating the one-time
// welcome modal.
func WelcomeShownKey(accountID string) string {
	return KeyWelcomeShownPrefix + accountID
}
