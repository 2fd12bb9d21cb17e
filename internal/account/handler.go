// File: internal/account/handler.go
package account

import (
	"errors"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler exposes the current user's profile over HTTP.
type Handler struct {
	store  *Store
	prefs  *settings.Store
	logger *zap.Logger
}

// NewHandler creates a new account handler.
func NewHandler(store *Store, prefs *settings.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, prefs: prefs, logger: logger}
}

// RegisterRoutes sets up the profile routes. All require a session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/users/me")
	group.Use(authMW)
	{
		group.GET("", h.getProfile)
		group.PATCH("", h.updateProfile)
		group.POST("/welcome-seen", h.welcomeSeen)
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	acct := h.store.Current()
	if acct == nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", acct)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	acct, err := h.store.UpdateCurrent(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if acct == nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}
	common.RespondOK(c, "Profile updated successfully.", acct)
}

// welcomeSeen records that the welcome modal was shown, and clears the
// session's new-account flag.
func (h *Handler) welcomeSeen(c *gin.Context) {
	acct := h.store.Current()
	if acct == nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No active session."))
		return
	}
	if err := h.prefs.MarkWelcomeShown(c.Request.Context(), acct.ID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.store.ClearNewFlag()
	common.RespondOK(c, "Welcome acknowledged.", nil)
}
