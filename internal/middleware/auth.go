// File: internal/middleware/auth.go
package middleware

import (
	"github.com/mohdalimj86-del/yalla.ge/internal/account"
	"github.com/mohdalimj86-del/yalla.ge/internal/auth"
	"github.com/mohdalimj86-del/yalla.ge/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireSession creates a Gin middleware that validates the bearer token
// and checks it belongs to the identity currently signed in. A valid token
// for a logged-out or replaced session is rejected.
func RequireSession(tokens *auth.TokenService, accounts *account.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			logger.Warn("Session token validation failed", zap.Error(err))
			common.RespondWithError(c, err)
			return
		}

		current := accounts.Current()
		if current == nil || current.ID != claims.AccountID {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Session is no longer active."))
			return
		}

		c.Set(common.AccountIDKey, claims.AccountID)
		c.Set(common.AccountEmailKey, claims.Email)
		c.Next()
	}
}
