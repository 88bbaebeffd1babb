package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/workspace-hub/pkg/apperror"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
	"github.com/oksasatya/workspace-hub/pkg/response"
)

// CtxUserIDKey holds the authenticated user id in the Gin context.
const CtxUserIDKey = "userID"

// Auth verifies the token cookie and sets userID in the Gin context on success.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.TokenCookie)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing session token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid session token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// OwnerOnly rejects requests whose :param differs from the authenticated user id.
// It must run after Auth.
func OwnerOnly(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" || !strings.EqualFold(c.Param(param), uid) {
			response.Fail(c, apperror.New(apperror.Forbidden, "you can only change your own account"))
			c.Abort()
			return
		}
		c.Next()
	}
}
