package middleware

import (
	"net/http"
	"strings"

	"bizdesk-backend/auth"
	"bizdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the verified session.
const SessionKey = "session"

// RequireSession guards a route group with the given session store.
// Tokens arrive as "Authorization: Bearer <token>"; a bare token is also
// accepted. A valid request has its session expiry extended.
func RequireSession(store *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.JSONError(c, http.StatusUnauthorized, "No authorization token provided")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		session := store.Verify(token)
		if session == nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		store.Touch(token)

		c.Set(SessionKey, *session)
		c.Next()
	}
}

// SessionFrom returns the session placed on the context by RequireSession.
func SessionFrom(c *gin.Context) (auth.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return auth.Session{}, false
	}
	session, ok := v.(auth.Session)
	return session, ok
}
