// README: Session middleware; binds each browser to a session via cookie.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifare/internal/modules/session"
)

const (
	SessionCookie = "taxifare_session"
	sessionKey    = "session"
)

// Session resolves the caller's session, creating one when the cookie is
// missing or refers to an expired session.
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		s := m.GetOrCreate(id)
		if s.ID() != id {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, s.ID(), 0, "/", "", false, true)
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// CurrentSession returns the session attached by Session.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
