// File: internal/conversation/transport.go
package conversation

import (
	"context"
	"time"
)

// Transport delivers an outgoing message to the other participant and hands
// back any response. Implementations may invoke onReply asynchronously; a
// canceled context means the reply should be dropped.
type Transport interface {
	SendMessage(ctx context.Context, conversationID, text string, onReply func(reply string))
}

// SimulatedTransport is the default transport: there is no real peer, so it
// answers every message with a canned acknowledgement after a fixed delay.
type SimulatedTransport struct {
	delay time.Duration
}

// NewSimulatedTransport creates the canned-reply transport. A non-positive
// delay makes replies immediate, which tests rely on.
func NewSimulatedTransport(delay time.Duration) *SimulatedTransport {
	return &SimulatedTransport{delay: delay}
}

var _ Transport = (*SimulatedTransport)(nil)

// SendMessage schedules the canned reply. The goroutine exits without
// replying when the context is canceled first.
func (t *SimulatedTransport) SendMessage(ctx context.Context, conversationID, text string, onReply func(reply string)) {
	reply := `Thanks for your message! I'll get back to you soon. You said: "` + text + `"`
	if t.delay <= 0 {
		onReply(reply)
		return
	}
	go func() {
		timer := time.NewTimer(t.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			onReply(reply)
		}
	}()
}
