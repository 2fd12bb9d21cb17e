// File: cmd/server/providers.go
package main

import (
	"github.com/mohdalimj86-del/yalla.ge/internal/config"
	"github.com/mohdalimj86-del/yalla.ge/internal/conversation"
)

// provideTransport selects the message transport. Only the simulated peer
// exists today.
func provideTransport(cfg *config.Config) conversation.Transport {
	return conversation.NewSimulatedTransport(cfg.ReplySimulatedDelay)
}
