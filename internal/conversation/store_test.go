// File: internal/conversation/store_test.go
package conversation

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestStore uses a zero-delay transport so replies land synchronously.
func newTestStore(t *testing.T) (*Store, *storage.Scopes) {
	t.Helper()
	scopes := storage.NewMemoryScopes()
	s, cleanup := NewStore(scopes, NewSimulatedTransport(0), zap.NewNop())
	t.Cleanup(cleanup)
	return s, scopes
}

func TestSeedThreadsLoad(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	convos := s.Conversations(ctx)
	require.Len(t, convos, 3)
	assert.Equal(t, "convo1", convos[0].ID)
	assert.Equal(t, "Nino K.", convos[0].Peer.Name)
	assert.Equal(t, 1, s.TotalUnread(ctx))

	msgs, err := s.Messages(ctx, "convo2")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.False(t, msgs[2].Read)
}

func TestSeedPersistsAcrossReload(t *testing.T) {
	s, scopes := newTestStore(t)
	ctx := context.Background()

	_, err := s.Send(ctx, "convo3", "Would you take 1600?")
	require.NoError(t, err)

	reloaded, cleanup := NewStore(scopes, NewSimulatedTransport(0), zap.NewNop())
	t.Cleanup(cleanup)

	msgs, err := reloaded.Messages(ctx, "convo3")
	require.NoError(t, err)
	// Original message, our question and the simulated answer.
	assert.Len(t, msgs, 3)
}

func TestSendAppendsAndTriggersReply(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before, err := s.Messages(ctx, "convo1")
	require.NoError(t, err)

	sent, err := s.Send(ctx, "convo1", "hello there")
	require.NoError(t, err)
	assert.Equal(t, CurrentUserID, sent.SenderID)
	assert.True(t, sent.Read)

	after, err := s.Messages(ctx, "convo1")
	require.NoError(t, err)
	require.Len(t, after, len(before)+2, "own message plus the simulated reply")

	reply := after[len(after)-1]
	assert.Equal(t, "user1", reply.SenderID)
	assert.False(t, reply.Read)
	assert.True(t, strings.Contains(reply.Text, `You said: "hello there"`))

	convos := s.Conversations(ctx)
	assert.Equal(t, "convo1", convos[0].ID, "active thread moves to the front")
	assert.Equal(t, 1, convos[0].UnreadCount)
	require.NotNil(t, convos[0].LastMessage)
	assert.Equal(t, reply.ID, convos[0].LastMessage.ID)
}

func TestSendToMissingConversation(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Send(context.Background(), "nope", "hello")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelayedReplyIsCancellable(t *testing.T) {
	transport := NewSimulatedTransport(50 * time.Millisecond)
	scopes := storage.NewMemoryScopes()
	s, cleanup := NewStore(scopes, transport, zap.NewNop())
	ctx := context.Background()

	_, err := s.Send(ctx, "convo1", "are you there?")
	require.NoError(t, err)

	// Cancel before the reply delay elapses; the reply must never arrive.
	cleanup()
	time.Sleep(100 * time.Millisecond)

	msgs, err := s.Messages(ctx, "convo1")
	require.NoError(t, err)
	assert.Equal(t, CurrentUserID, msgs[len(msgs)-1].SenderID)
}

func TestDelayedReplyArrives(t *testing.T) {
	transport := NewSimulatedTransport(100 * time.Millisecond)
	scopes := storage.NewMemoryScopes()
	s, cleanup := NewStore(scopes, transport, zap.NewNop())
	t.Cleanup(cleanup)
	ctx := context.Background()

	require.NoError(t, s.MarkAsRead(ctx, "convo2"))
	before, err := s.Messages(ctx, "convo2")
	require.NoError(t, err)

	_, err = s.Send(ctx, "convo2", "ping")
	require.NoError(t, err)

	// Before the delay elapses the thread ends with our own message.
	msgs, err := s.Messages(ctx, "convo2")
	require.NoError(t, err)
	require.Len(t, msgs, len(before)+1)
	assert.Equal(t, "ping", msgs[len(msgs)-1].Text)
	assert.Equal(t, CurrentUserID, msgs[len(msgs)-1].SenderID)
	assert.Equal(t, 0, s.TotalUnread(ctx))

	require.Eventually(t, func() bool {
		msgs, err := s.Messages(ctx, "convo2")
		return err == nil && len(msgs) == len(before)+2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, s.TotalUnread(ctx))
}

func TestMarkAsRead(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkAsRead(ctx, "convo2"))
	assert.Equal(t, 0, s.TotalUnread(ctx))

	msgs, err := s.Messages(ctx, "convo2")
	require.NoError(t, err)
	for _, m := range msgs {
		assert.True(t, m.Read)
	}

	assert.ErrorIs(t, s.MarkAsRead(ctx, "nope"), common.ErrNotFound)
}

func TestOtherParticipant(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	peer, err := s.OtherParticipant(ctx, "convo2")
	require.NoError(t, err)
	assert.Equal(t, "user2", peer.ID)
	assert.Equal(t, "Sophie B.", peer.Name)

	_, err = s.OtherParticipant(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStartConversation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Known peer reuses the existing thread.
	resp, err := s.Start(ctx, "user1", "")
	require.NoError(t, err)
	assert.Equal(t, "convo1", resp.ID)

	// Unknown peer opens a fresh one at the front.
	resp, err = s.Start(ctx, "user9", "Giorgi B.")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Giorgi B.", resp.Peer.Name)
	assert.Equal(t, resp.ID, s.Conversations(ctx)[0].ID)

	_, err = s.Start(ctx, CurrentUserID, "")
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestConcurrentSendsKeepLogConsistent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before, err := s.Messages(ctx, "convo1")
	require.NoError(t, err)

	const senders = 8
	var wg sync.WaitGroup
	wg.Add(senders)
	for i := 0; i < senders; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Send(ctx, "convo1", "concurrent hello")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	msgs, err := s.Messages(ctx, "convo1")
	require.NoError(t, err)
	assert.Len(t, msgs, len(before)+2*senders)

	seen := make(map[string]bool)
	for _, m := range msgs {
		assert.False(t, seen[m.ID], "message ids must be unique")
		seen[m.ID] = true
	}
}
