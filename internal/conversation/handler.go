// File: internal/conversation/handler.go
package conversation

import (
	"errors"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler exposes the conversation store over HTTP. All routes require a
// session.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new conversation handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes sets up the routes for messaging operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/conversations")
	group.Use(authMW)
	{
		group.GET("", h.listConversations)
		group.POST("", h.startConversation)
		group.GET("/unread-count", h.unreadCount)
		group.GET("/:id/messages", h.getMessages)
		group.POST("/:id/messages", h.sendMessage)
		group.POST("/:id/read", h.markAsRead)
		group.GET("/:id/peer", h.getPeer)
	}
}

func (h *Handler) listConversations(c *gin.Context) {
	common.RespondOK(c, "Conversations retrieved successfully.", h.store.Conversations(c.Request.Context()))
}

func (h *Handler) startConversation(c *gin.Context) {
	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	resp, err := h.store.Start(c.Request.Context(), req.PeerID, req.PeerName)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Conversation ready.", resp)
}

func (h *Handler) unreadCount(c *gin.Context) {
	common.RespondOK(c, "Unread count retrieved.", gin.H{"unreadCount": h.store.TotalUnread(c.Request.Context())})
}

func (h *Handler) getMessages(c *gin.Context) {
	msgs, err := h.store.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Messages retrieved successfully.", msgs)
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	msg, err := h.store.Send(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Message sent.", msg)
}

func (h *Handler) markAsRead(c *gin.Context) {
	if err := h.store.MarkAsRead(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Conversation marked as read.", nil)
}

func (h *Handler) getPeer(c *gin.Context) {
	peer, err := h.store.OtherParticipant(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Peer retrieved successfully.", peer)
}
