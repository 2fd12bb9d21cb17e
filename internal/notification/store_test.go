// File: internal/notification/store_test.go
package notification

import (
	"context"
	"testing"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, *storage.Scopes) {
	t.Helper()
	scopes := storage.NewMemoryScopes()
	return NewStore(scopes, zap.NewNop()), scopes
}

func TestSeedFeedLoads(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	feed := s.All(ctx)
	require.Len(t, feed, 4)
	assert.Equal(t, "notif1", feed[0].ID)
	assert.Equal(t, TypeNewReview, feed[0].Type)
	assert.Equal(t, 2, s.UnreadCount(ctx))
}

func TestFeedPersistsAcrossReload(t *testing.T) {
	s, scopes := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkAllAsRead(ctx))

	reloaded := NewStore(scopes, zap.NewNop())
	assert.Equal(t, 0, reloaded.UnreadCount(ctx))
	assert.Len(t, reloaded.All(ctx), 4)
}

func TestPushPrepends(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	n, err := s.Push(ctx, TypeNewMessage, "You have a new message from Luka T.", "/messages/convo3")
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)

	feed := s.All(ctx)
	require.Len(t, feed, 5)
	assert.Equal(t, n.ID, feed[0].ID)
	assert.Equal(t, 3, s.UnreadCount(ctx))
}

func TestMarkAsRead(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkAsRead(ctx, "notif1"))
	assert.Equal(t, 1, s.UnreadCount(ctx))

	// Idempotent on an already-read entry.
	require.NoError(t, s.MarkAsRead(ctx, "notif1"))
	assert.Equal(t, 1, s.UnreadCount(ctx))

	assert.ErrorIs(t, s.MarkAsRead(ctx, "nope"), common.ErrNotFound)
}

func TestMarkAllAsRead(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkAllAsRead(ctx))
	assert.Equal(t, 0, s.UnreadCount(ctx))

	// A second call has nothing to do.
	require.NoError(t, s.MarkAllAsRead(ctx))
}
