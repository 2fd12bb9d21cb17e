// File: internal/notification/store.go

// Package notification keeps the user's activity feed. The feed is seeded on
// first load and persisted durably; live actions do not generate entries,
// only read-state changes mutate the feed.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns the notification feed, newest first.
type Store struct {
	mu     sync.Mutex
	scopes *storage.Scopes
	logger *zap.Logger

	feed []Notification
}

// NewStore loads the persisted feed, seeding and persisting the starter set
// when none exists yet.
func NewStore(scopes *storage.Scopes, logger *zap.Logger) *Store {
	s := &Store{scopes: scopes, logger: logger}

	ctx := context.Background()
	var saved []Notification
	found, err := storage.ReadJSON(ctx, scopes.Durable, storage.KeyNotifications, &saved)
	if err != nil {
		s.logger.Warn("Discarding corrupt saved notifications, reseeding", zap.Error(err))
		found = false
	}
	if found {
		s.feed = saved
		return s
	}

	s.feed = seedFeed(time.Now().UTC())
	if err := s.persistLocked(ctx); err != nil {
		s.logger.Warn("Failed to persist seeded notifications", zap.Error(err))
	}
	return s
}

// All returns the feed, newest first.
func (s *Store) All(ctx context.Context) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.feed...)
}

// UnreadCount is derived from the feed on every call, never cached.
func (s *Store) UnreadCount(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range s.feed {
		if !s.feed[i].Read {
			count++
		}
	}
	return count
}

// Push prepends a new entry to the feed.
func (s *Store) Push(ctx context.Context, typ Type, message, link string) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := Notification{
		ID:        "notif-" + uuid.NewString(),
		Type:      typ,
		Message:   message,
		CreatedAt: time.Now().UTC(),
		Link:      link,
	}
	s.feed = append([]Notification{n}, s.feed...)
	if err := s.persistLocked(ctx); err != nil {
		s.feed = s.feed[1:]
		return nil, err
	}
	return &n, nil
}

// MarkAsRead flags one entry read.
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.feed {
		if s.feed[i].ID == id {
			if s.feed[i].Read {
				return nil
			}
			s.feed[i].Read = true
			if err := s.persistLocked(ctx); err != nil {
				s.feed[i].Read = false
				return err
			}
			return nil
		}
	}
	return common.ErrNotFound.WithDetails("Notification not found.")
}

// MarkAllAsRead flags the whole feed read.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for i := range s.feed {
		if !s.feed[i].Read {
			s.feed[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := storage.WriteJSON(ctx, s.scopes.Durable, storage.KeyNotifications, s.feed); err != nil {
		s.logger.Error("Failed to persist notifications", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not save notifications.")
	}
	return nil
}
