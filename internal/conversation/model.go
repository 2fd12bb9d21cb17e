// File: internal/conversation/model.go
package conversation

import "time"

// CurrentUserID is the sender id representing this session's user in the
// stored message log. The original storage layout identifies the local side
// this way rather than by account id.
const CurrentUserID = "currentUser"

// Message is one direct message inside a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
	Read           bool      `json:"read"`
}

// Conversation is a two-party thread. LastMessage mirrors the newest entry
// of the thread's message log and UnreadCount tracks messages from the other
// side not yet seen.
type Conversation struct {
	ID             string   `json:"id"`
	ParticipantIDs []string `json:"participantIds"`
	LastMessage    *Message `json:"lastMessage,omitempty"`
	UnreadCount    int      `json:"unreadCount"`
}

// Peer is the display identity of the other participant.
type Peer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// OtherParticipantID returns the participant that is not the local user.
func (c *Conversation) OtherParticipantID() string {
	for _, id := range c.ParticipantIDs {
		if id != CurrentUserID {
			return id
		}
	}
	return ""
}

func (m *Message) clone() *Message {
	if m == nil {
		return nil
	}
	cp := *m
	return &cp
}

func (c *Conversation) clone() Conversation {
	cp := *c
	cp.ParticipantIDs = append([]string(nil), c.ParticipantIDs...)
	cp.LastMessage = c.LastMessage.clone()
	return cp
}

// --- DTOs for API requests ---

// SendMessageRequest is the payload for posting a message to a thread.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// StartConversationRequest opens (or reuses) a thread with a peer.
type StartConversationRequest struct {
	PeerID   string `json:"peerId" binding:"required"`
	PeerName string `json:"peerName,omitempty"`
}

// ConversationResponse pairs a thread with its resolved peer.
type ConversationResponse struct {
	Conversation
	Peer Peer `json:"peer"`
}
