// File: internal/auth/handler.go
package auth

import (
	"errors"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/account"
	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SessionResponse is returned by every operation that establishes a session.
// IsNew drives the one-time welcome modal on the client.
type SessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      *account.Account `json:"user"`
	IsNew     bool             `json:"isNew"`
}

// Handler exposes the authentication flows over HTTP.
type Handler struct {
	accounts *account.Store
	tokens   *TokenService
	prefs    *settings.Store
	logger   *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(accounts *account.Store, tokens *TokenService, prefs *settings.Store, logger *zap.Logger) *Handler {
	return &Handler{accounts: accounts, tokens: tokens, prefs: prefs, logger: logger}
}

// RegisterRoutes sets up the authentication routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/social-login", h.socialLogin)
		authGroup.POST("/verify-email", h.verifyEmail)

		authed := authGroup.Group("")
		authed.Use(authMW)
		{
			authed.POST("/logout", h.logout)
		}
	}
}

func (h *Handler) register(c *gin.Context) {
	var req account.RegisterRequest
	if !h.bind(c, &req) {
		return
	}

	acct, err := h.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondSession(c, acct, true)
}

func (h *Handler) login(c *gin.Context) {
	var req account.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	acct, err := h.accounts.LoginWithEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondSession(c, acct, false)
}

func (h *Handler) socialLogin(c *gin.Context) {
	var req account.SocialLoginRequest
	if !h.bind(c, &req) {
		return
	}

	acct, err := h.accounts.LoginWithExternalIdentity(c.Request.Context(), account.ExternalProfile{
		ID:      req.ID,
		Name:    req.Name,
		Email:   req.Email,
		Picture: req.Picture,
	})
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.respondSession(c, acct, false)
}

func (h *Handler) verifyEmail(c *gin.Context) {
	var req account.VerifyEmailRequest
	if !h.bind(c, &req) {
		return
	}

	acct, err := h.accounts.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Email verified successfully.", acct)
}

func (h *Handler) logout(c *gin.Context) {
	h.logger.Info("Session logged out", zap.String("accountID", common.GetAccountIDFromContext(c)))
	h.accounts.Logout(c.Request.Context())
	common.RespondOK(c, "Logged out.", nil)
}

// respondSession issues a token for the fresh session. A session counts as
// new when the account was just created or this installation has never
// shown the account its welcome.
func (h *Handler) respondSession(c *gin.Context, acct *account.Account, created bool) {
	token, expiresAt, err := h.tokens.Generate(acct)
	if err != nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not issue session token."))
		return
	}

	isNew := h.accounts.IsNew() || !h.prefs.WelcomeShown(c.Request.Context(), acct.ID)
	resp := SessionResponse{Token: token, ExpiresAt: expiresAt, User: acct, IsNew: isNew}
	if created {
		common.RespondCreated(c, "Account created successfully.", resp)
		return
	}
	common.RespondOK(c, "Logged in successfully.", resp)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return false
	}
	return true
}
