package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"flux-ci/pkg/response"
)

const HeaderAPIToken = "X-API-Token"

// Auth gates the management API behind the configured static token, sent
// either as "Authorization: Bearer <token>" or in X-API-Token.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if m.apiToken == "" {
			m.l.Warnf(ctx, "middleware.Auth: api token not configured, rejecting %s %s", c.Request.Method, c.FullPath())
			response.Unauthorized(c)
			c.Abort()
			return
		}

		token := presentedToken(c)
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(m.apiToken)) != 1 {
			m.l.Warnf(ctx, "middleware.Auth: invalid token from %s", c.ClientIP())
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func presentedToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.GetHeader(HeaderAPIToken))
}
