// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"github.com/mohdalimj86-del/yalla.ge/internal/account"
	"github.com/mohdalimj86-del/yalla.ge/internal/app"
	"github.com/mohdalimj86-del/yalla.ge/internal/auth"
	"github.com/mohdalimj86-del/yalla.ge/internal/config"
	"github.com/mohdalimj86-del/yalla.ge/internal/conversation"
	"github.com/mohdalimj86-del/yalla.ge/internal/jobs"
	"github.com/mohdalimj86-del/yalla.ge/internal/listing"
	"github.com/mohdalimj86-del/yalla.ge/internal/notification"
	"github.com/mohdalimj86-del/yalla.ge/internal/platform/crypto"
	"github.com/mohdalimj86-del/yalla.ge/internal/platform/logger"
	"github.com/mohdalimj86-del/yalla.ge/internal/settings"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		storage.NewScopes,
		crypto.NewIDGenerator,

		// Stores
		account.NewStore,
		settings.NewStore,
		listing.NewStore,
		provideTransport,
		conversation.NewStore,
		notification.NewStore,

		// Session tokens
		auth.NewTokenService,

		// Handlers
		auth.NewHandler,
		account.NewHandler,
		listing.NewHandler,
		conversation.NewHandler,
		notification.NewHandler,
		settings.NewHandler,

		// Jobs
		jobs.NewTokenSweepJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
