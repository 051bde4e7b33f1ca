package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookieName = "hostel_agent_session"
const CookieMaxAge = 30 * 24 * 60 * 60 // 30 days

// Session ensures every request carries a session UUID, minting a cookie
// when none exists. History is in-memory only, so an unknown or malformed
// cookie simply starts a fresh session.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID uuid.UUID

		cookie, err := c.Cookie(SessionCookieName)
		switch {
		case err == http.ErrNoCookie:
			sessionID = uuid.New()
			c.SetCookie(SessionCookieName, sessionID.String(), CookieMaxAge, "/", "", false, true)
		case err != nil:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session cookie"})
			return
		default:
			sessionID, err = uuid.Parse(cookie)
			if err != nil {
				sessionID = uuid.New()
				c.SetCookie(SessionCookieName, sessionID.String(), CookieMaxAge, "/", "", false, true)
			}
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
