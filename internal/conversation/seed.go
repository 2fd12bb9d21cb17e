// File: internal/conversation/seed.go
package conversation

import "time"

// seedPeers is the built-in peer directory for the seed threads.
func seedPeers() map[string]Peer {
	return map[string]Peer{
		"user1": {ID: "user1", Name: "Nino K.", Picture: "https://i.pravatar.cc/150?u=nino"},
		"user2": {ID: "user2", Name: "Sophie B.", Picture: "https://i.pravatar.cc/150?u=sophie"},
		"user3": {ID: "user3", Name: "Luka T.", Picture: "https://i.pravatar.cc/150?u=luka"},
	}
}

// seedThreads builds the three starter conversations with message times
// relative to now, matching the freshness the original client fakes.
func seedThreads(now time.Time) ([]Conversation, map[string][]Message) {
	messages := map[string][]Message{
		"convo1": {
			{ID: "msg1", ConversationID: "convo1", SenderID: "user1", Text: "Hi there! Is your studio still available?", CreatedAt: now.Add(-2 * time.Hour), Read: true},
			{ID: "msg2", ConversationID: "convo1", SenderID: CurrentUserID, Text: "Hey Nino! Yes, it is. Are you interested?", CreatedAt: now.Add(-1 * time.Hour), Read: true},
		},
		"convo2": {
			{ID: "msg3", ConversationID: "convo2", SenderID: "user2", Text: "Hello! I saw your review on the Saburtalo studio. Was it noisy?", CreatedAt: now.Add(-30 * time.Minute), Read: true},
			{ID: "msg4", ConversationID: "convo2", SenderID: CurrentUserID, Text: "Hi Sophie. Not at all, it was quite peaceful actually.", CreatedAt: now.Add(-28 * time.Minute), Read: true},
			{ID: "msg5", ConversationID: "convo2", SenderID: "user2", Text: "Great, thanks for the info!", CreatedAt: now.Add(-5 * time.Minute), Read: false},
		},
		"convo3": {
			{ID: "msg6", ConversationID: "convo3", SenderID: "user3", Text: "Is the price for the MacBook negotiable?", CreatedAt: now.Add(-72 * time.Hour), Read: true},
		},
	}

	last := func(id string) *Message {
		msgs := messages[id]
		m := msgs[len(msgs)-1]
		return &m
	}

	conversations := []Conversation{
		{ID: "convo1", ParticipantIDs: []string{CurrentUserID, "user1"}, LastMessage: last("convo1"), UnreadCount: 0},
		{ID: "convo2", ParticipantIDs: []string{CurrentUserID, "user2"}, LastMessage: last("convo2"), UnreadCount: 1},
		{ID: "convo3", ParticipantIDs: []string{CurrentUserID, "user3"}, LastMessage: last("convo3"), UnreadCount: 0},
	}
	return conversations, messages
}
