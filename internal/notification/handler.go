// File: internal/notification/handler.go
package notification

import (
	"github.com/mohdalimj86-del/yalla.ge/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the notification feed over HTTP. All routes require a
// session.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new notification handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes sets up the routes for the notification feed.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/notifications")
	group.Use(authMW)
	{
		group.GET("", h.listNotifications)
		group.GET("/unread-count", h.unreadCount)
		group.POST("/:id/read", h.markAsRead)
		group.POST("/read-all", h.markAllAsRead)
	}
}

func (h *Handler) listNotifications(c *gin.Context) {
	common.RespondOK(c, "Notifications retrieved successfully.", h.store.All(c.Request.Context()))
}

func (h *Handler) unreadCount(c *gin.Context) {
	common.RespondOK(c, "Unread count retrieved.", gin.H{"unreadCount": h.store.UnreadCount(c.Request.Context())})
}

func (h *Handler) markAsRead(c *gin.Context) {
	if err := h.store.MarkAsRead(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Notification marked as read.", nil)
}

func (h *Handler) markAllAsRead(c *gin.Context) {
	if err := h.store.MarkAllAsRead(c.Request.Context()); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "All notifications marked as read.", nil)
}
