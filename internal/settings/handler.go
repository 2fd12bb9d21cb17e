// File: internal/settings/handler.go
package settings

import (
	"github.com/mohdalimj86-del/yalla.ge/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the preferences store over HTTP. Language is readable and
// writable without a session, matching the original client where the
// language picker works while signed out.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new settings handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes sets up the preference routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/settings")
	{
		group.GET("/language", h.getLanguage)
		group.PUT("/language", h.setLanguage)
	}
}

func (h *Handler) getLanguage(c *gin.Context) {
	common.RespondOK(c, "Language retrieved.", gin.H{"language": h.store.Language(c.Request.Context())})
}

func (h *Handler) setLanguage(c *gin.Context) {
	var req struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}
	if err := h.store.SetLanguage(c.Request.Context(), req.Language); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Language saved.", gin.H{"language": req.Language})
}
