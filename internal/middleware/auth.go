package middleware

import (
	"context"
	"errors"
	"net/http"
	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var ErrAdminRequired = errors.New("admin privileges required")

// PrincipalResolver maps an access token to a live user.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*user.User, error)
}

// RequireAuth resolves the caller from the access token and stores the
// principal on the request context. Requests without a valid token get 401.
func RequireAuth(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token := auth.ExtractAccessToken(c.Request)

		u, err := resolver.ResolvePrincipal(ctx, token)
		if err != nil {
			status := http.StatusUnauthorized
			detail := "could not validate credentials"
			if !errors.Is(err, user.ErrUnauthorized) {
				logger.FromCtx(ctx).Error("failed to resolve principal", zap.Error(err))
				status = http.StatusInternalServerError
				detail = "internal server error"
			}
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(status, gin.H{"detail": detail})
			return
		}

		ctx = utils.SetUserContext(ctx, u.ID, u.Email, u.IsAdmin)
		ctx = logger.WithUserID(ctx, u.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if !utils.IsAdminFromContext(ctx) {
			logger.FromCtx(ctx).Warn("admin route denied",
				zap.String("email", utils.GetUserEmailFromContext(ctx)),
				zap.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": ErrAdminRequired.Error()})
			return
		}
		c.Next()
	}
}
