package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "session_id"

const contextKeyUserID = "user_id"

// UserIDFromContext returns the current user ID set by RequireSession.
// uuid.Nil if not set.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// RequireSession returns a middleware that checks for a valid session
// cookie and sets the current user ID in context. Missing or invalid
// sessions get a 401.
func RequireSession(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		userID, ok := sessions.GetUserID(c.Request.Context(), sessionID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}
