package middleware

// identity.go holds the context key under which the session middleware
// stores the caller's session, plus accessors shared by handlers and other
// middleware.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-review-service/internal/model"
)

// SessionKey is the echo.Context key holding the *model.Session (or nil).
const SessionKey = "session"

// CurrentSession returns the session loaded for this request, or nil when
// the caller presented neither a known cookie nor a valid bearer token.
func CurrentSession(c echo.Context) *model.Session {
	s, _ := c.Get(SessionKey).(*model.Session)
	return s
}

// username returns the claimed username for logging, or "guest".  It is
// not an authorization decision; the review gateway re-verifies the token.
func username(c echo.Context) string {
	if s := CurrentSession(c); s != nil && s.Username != "" {
		return s.Username
	}
	return "guest"
}
