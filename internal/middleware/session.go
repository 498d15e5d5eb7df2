package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader        = "X-Session-ID"
	SessionCookie        = "ks_session"
	IdempotencyKeyHeader = "Idempotency-Key"
	sessionKey           = "session_id"

	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

var sessionIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// SessionMiddleware identifies the browsing session from the X-Session-ID
// header or the ks_session cookie, issuing a new one when neither carries a
// well-formed ID. The ID is echoed back in both.
func SessionMiddleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if !sessionIDRe.MatchString(id) {
			id, _ = c.Cookie(SessionCookie)
		}
		if !sessionIDRe.MatchString(id) {
			id = uuid.NewString()
		}

		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, sessionCookieMaxAge, "/", "", secureCookie, true)
		c.Next()
	}
}

// GetSessionID returns the session set by SessionMiddleware.
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
