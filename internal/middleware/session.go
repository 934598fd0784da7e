package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/book-review-service/internal/model"
	"github.com/iliyamo/book-review-service/internal/repository"
)

// TokenSessions turns a bearer token into a transient session.
type TokenSessions interface {
	SessionFromToken(raw string) *model.Session
}

// LoadSession returns a middleware that looks up the caller's session and
// stores it under SessionKey.  The session cookie wins; without one, an
// "Authorization: Bearer <token>" header is accepted instead.  A missing
// session is not an error here: handlers decide whether one is required.
// A failing session store yields 500 so outages are not reported as 401.
func LoadSession(store repository.SessionStore, tokens TokenSessions, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sess *model.Session
			if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
				s, err := store.Get(c.Request().Context(), ck.Value)
				if err != nil {
					log.Error().Err(err).Msg("session lookup failed")
					return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Session store unavailable"})
				}
				sess = s
			}
			if sess == nil && tokens != nil {
				if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
					sess = tokens.SessionFromToken(strings.TrimPrefix(auth, "Bearer "))
				}
			}
			c.Set(SessionKey, sess)
			log.Debug().Str("user", username(c)).Str("path", c.Path()).Msg("session loaded")
			return next(c)
		}
	}
}
