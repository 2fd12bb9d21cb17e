// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/account"
	"github.com/mohdalimj86-del/yalla.ge/internal/auth"
	"github.com/mohdalimj86-del/yalla.ge/internal/config"
	"github.com/mohdalimj86-del/yalla.ge/internal/conversation"
	"github.com/mohdalimj86-del/yalla.ge/internal/jobs"
	"github.com/mohdalimj86-del/yalla.ge/internal/listing"
	"github.com/mohdalimj86-del/yalla.ge/internal/middleware"
	"github.com/mohdalimj86-del/yalla.ge/internal/notification"
	"github.com/mohdalimj86-del/yalla.ge/internal/settings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	tokenSweepJob *jobs.TokenSweepJob
}

// NewServer wires the middleware stack and every feature's routes.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokens *auth.TokenService,
	accounts *account.Store,
	authHandler *auth.Handler,
	accountHandler *account.Handler,
	listingHandler *listing.Handler,
	conversationHandler *conversation.Handler,
	notificationHandler *notification.Handler,
	settingsHandler *settings.Handler,
	tokenSweepJob *jobs.TokenSweepJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.RequireSession(tokens, accounts, logger.Named("RequireSession"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Yalla.ge API is healthy!"})
	})

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1, authMW)
	accountHandler.RegisterRoutes(v1, authMW)
	listingHandler.RegisterRoutes(v1, authMW)
	conversationHandler.RegisterRoutes(v1, authMW)
	notificationHandler.RegisterRoutes(v1, authMW)
	settingsHandler.RegisterRoutes(v1)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:    httpServer,
		router:        router,
		cfg:           cfg,
		logger:        logger,
		tokenSweepJob: tokenSweepJob,
	}, nil
}

// Start runs the background jobs and serves HTTP until shutdown.
func (s *Server) Start() error {
	if s.tokenSweepJob != nil {
		if err := s.tokenSweepJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start token sweep job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

// Shutdown stops the jobs and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.tokenSweepJob != nil {
		s.tokenSweepJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
