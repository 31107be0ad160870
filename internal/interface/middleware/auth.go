package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventapp/server/pkg/helpers"
	"github.com/eventapp/server/pkg/response"
)

// Context keys set by Auth on success.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// Auth validates the Authorization bearer token and injects the decoded
// identity into the Gin context. A missing token is 401; a present but
// invalid or expired one is 403.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "access token required", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Abort(c, http.StatusForbidden, "invalid token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
