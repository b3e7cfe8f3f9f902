package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/stavrosk/checkout-gate/internal/session"
)

// UserIDKey is the gin context key the resolved user id is stored under.
const UserIDKey = "userID"

// Session resolves the signed session cookie to a user id once per
// request and stores it in the gin context, so handlers receive
// identity as plain data. A missing, garbled, or forged cookie means
// the request is anonymous; it is never an error.
func Session(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)
		if err == nil && raw != "" {
			if userID, err := sessions.Parse(raw); err == nil {
				c.Set(UserIDKey, userID)
			}
		}
		c.Next()
	}
}
