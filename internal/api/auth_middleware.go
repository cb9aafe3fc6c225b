// internal/api/auth_middleware.go
package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chukainspires/coachsite/internal/services"
)

// sessionKey is where the authenticated session id lives in the gin context.
const sessionKey = "session_id"

// AuthRequired rejects requests without a valid Bearer session token. Admin
// routes sit behind it; public routes never see it.
func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	rh := NewResponseHelper()
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" {
			rh.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		session, err := auth.ValidateToken(token)
		if err != nil {
			rh.Unauthorized(c, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// sessionID returns the authenticated session id set by AuthRequired.
func sessionID(c *gin.Context) string {
	if v, exists := c.Get(sessionKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
