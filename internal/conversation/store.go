// File: internal/conversation/store.go

// Package conversation implements the direct-message threads. Threads are
// seeded on first load and persisted durably; the auto-reply peer is behind
// the Transport interface so a real messaging backend can slot in later.
package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns the conversation list and per-thread message logs. The list is
// kept most-recently-active first.
type Store struct {
	mu        sync.Mutex
	scopes    *storage.Scopes
	transport Transport
	logger    *zap.Logger

	conversations []Conversation
	messages      map[string][]Message
	peers         map[string]Peer

	// baseCtx governs pending simulated replies; cancel drops them.
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewStore loads persisted threads, seeding and persisting the starter set
// when none exist yet. The returned cleanup cancels pending replies.
func NewStore(scopes *storage.Scopes, transport Transport, logger *zap.Logger) (*Store, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		scopes:    scopes,
		transport: transport,
		logger:    logger,
		peers:     seedPeers(),
		baseCtx:   ctx,
		cancel:    cancel,
	}
	s.load(context.Background())
	return s, cancel
}

func (s *Store) load(ctx context.Context) {
	var convos []Conversation
	foundConvos, errConvos := storage.ReadJSON(ctx, s.scopes.Durable, storage.KeyConversations, &convos)
	var msgs map[string][]Message
	foundMsgs, errMsgs := storage.ReadJSON(ctx, s.scopes.Durable, storage.KeyMessages, &msgs)

	if errConvos != nil || errMsgs != nil {
		s.logger.Warn("Discarding corrupt saved threads, reseeding",
			zap.NamedError("conversations", errConvos), zap.NamedError("messages", errMsgs))
		foundConvos, foundMsgs = false, false
	}

	if foundConvos && foundMsgs {
		s.conversations = convos
		s.messages = msgs
		return
	}

	s.conversations, s.messages = seedThreads(time.Now().UTC())
	if err := s.persistLocked(ctx); err != nil {
		s.logger.Warn("Failed to persist seeded threads", zap.Error(err))
	}
}

// Conversations returns all threads, most recently active first.
func (s *Store) Conversations(ctx context.Context) []ConversationResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ConversationResponse, len(s.conversations))
	for i := range s.conversations {
		out[i] = ConversationResponse{
			Conversation: s.conversations[i].clone(),
			Peer:         s.peerLocked(s.conversations[i].OtherParticipantID()),
		}
	}
	return out
}

// Messages returns a thread's log in chronological order.
func (s *Store) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLocked(conversationID) == nil {
		return nil, common.ErrNotFound.WithDetails("Conversation not found.")
	}
	return append([]Message(nil), s.messages[conversationID]...), nil
}

// OtherParticipant resolves the display identity of the thread's peer.
func (s *Store) OtherParticipant(ctx context.Context, conversationID string) (*Peer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findLocked(conversationID)
	if c == nil {
		return nil, common.ErrNotFound.WithDetails("Conversation not found.")
	}
	peer := s.peerLocked(c.OtherParticipantID())
	return &peer, nil
}

// Start opens a thread with a peer, reusing an existing one when present.
func (s *Store) Start(ctx context.Context, peerID, peerName string) (*ConversationResponse, error) {
	if peerID == CurrentUserID {
		return nil, common.ErrBadRequest.WithDetails("Cannot start a conversation with yourself.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.conversations {
		if s.conversations[i].OtherParticipantID() == peerID {
			resp := ConversationResponse{Conversation: s.conversations[i].clone(), Peer: s.peerLocked(peerID)}
			return &resp, nil
		}
	}

	if _, known := s.peers[peerID]; !known && peerName != "" {
		s.peers[peerID] = Peer{ID: peerID, Name: peerName}
	}

	c := Conversation{
		ID:             "convo-" + uuid.NewString(),
		ParticipantIDs: []string{CurrentUserID, peerID},
	}
	s.conversations = append([]Conversation{c}, s.conversations...)
	if err := s.persistLocked(ctx); err != nil {
		s.conversations = s.conversations[1:]
		return nil, err
	}
	resp := ConversationResponse{Conversation: c.clone(), Peer: s.peerLocked(peerID)}
	return &resp, nil
}

// Send appends the user's message, bumps the thread to the front and returns
// the stored message immediately. The peer's reply, if any, arrives through
// the transport after its own delay.
func (s *Store) Send(ctx context.Context, conversationID, text string) (*Message, error) {
	s.mu.Lock()

	c := s.findLocked(conversationID)
	if c == nil {
		s.mu.Unlock()
		return nil, common.ErrNotFound.WithDetails("Conversation not found.")
	}

	msg := Message{
		ID:             "msg-" + uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       CurrentUserID,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
		Read:           true,
	}
	if err := s.appendLocked(ctx, c, msg, false); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.transport.SendMessage(s.baseCtx, conversationID, text, func(reply string) {
		s.receiveReply(conversationID, reply)
	})
	return msg.clone(), nil
}

// receiveReply records an incoming peer message: unread, thread to front.
func (s *Store) receiveReply(conversationID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findLocked(conversationID)
	if c == nil {
		return
	}
	msg := Message{
		ID:             "msg-" + uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       c.OtherParticipantID(),
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.appendLocked(context.Background(), c, msg, true); err != nil {
		s.logger.Warn("Failed to record incoming reply", zap.String("conversationId", conversationID), zap.Error(err))
	}
}

// MarkAsRead clears a thread's unread counter and flags its messages read.
func (s *Store) MarkAsRead(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findLocked(conversationID)
	if c == nil {
		return common.ErrNotFound.WithDetails("Conversation not found.")
	}
	c.UnreadCount = 0
	msgs := s.messages[conversationID]
	for i := range msgs {
		msgs[i].Read = true
	}
	if c.LastMessage != nil {
		c.LastMessage.Read = true
	}
	return s.persistLocked(ctx)
}

// TotalUnread sums unread counters across all threads.
func (s *Store) TotalUnread(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for i := range s.conversations {
		total += s.conversations[i].UnreadCount
	}
	return total
}

// appendLocked is the single mutation path for message arrival: it appends
// to the log, mirrors the last message, moves the thread to the front and
// rewrites both collections.
func (s *Store) appendLocked(ctx context.Context, c *Conversation, msg Message, incoming bool) error {
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	last := msg
	c.LastMessage = &last
	if incoming {
		c.UnreadCount++
	}
	s.moveToFrontLocked(c.ID)
	if err := s.persistLocked(ctx); err != nil {
		log := s.messages[msg.ConversationID]
		s.messages[msg.ConversationID] = log[:len(log)-1]
		return err
	}
	return nil
}

func (s *Store) moveToFrontLocked(conversationID string) {
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			if i > 0 {
				c := s.conversations[i]
				s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
				s.conversations = append([]Conversation{c}, s.conversations...)
			}
			return
		}
	}
}

func (s *Store) findLocked(conversationID string) *Conversation {
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			return &s.conversations[i]
		}
	}
	return nil
}

func (s *Store) peerLocked(peerID string) Peer {
	if p, ok := s.peers[peerID]; ok {
		return p
	}
	return Peer{ID: peerID, Name: "Unknown user"}
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := storage.WriteJSON(ctx, s.scopes.Durable, storage.KeyConversations, s.conversations); err != nil {
		s.logger.Error("Failed to persist conversations", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not save conversations.")
	}
	if err := storage.WriteJSON(ctx, s.scopes.Durable, storage.KeyMessages, s.messages); err != nil {
		s.logger.Error("Failed to persist messages", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not save messages.")
	}
	return nil
}
