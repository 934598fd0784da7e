package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/book-review-service/internal/model"
	"github.com/iliyamo/book-review-service/internal/repository"
	"github.com/iliyamo/book-review-service/internal/service"
)

// Registrar creates accounts in the user directory.
type Registrar interface {
	Create(username, password string) error
}

// LoginService binds a verified identity to a session.
type LoginService interface {
	Login(ctx context.Context, sessionID, username, password string) (model.Session, error)
}

// AuthHandler bundles dependencies for the registration and login endpoints.
type AuthHandler struct {
	Users        Registrar
	Auth         LoginService
	Sessions     repository.SessionStore
	CookieName   string
	CookieSecure bool
	Log          zerolog.Logger
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) bindCredentials(c echo.Context) (credentialsReq, error) {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return req, err
	}
	req.Username = strings.TrimSpace(req.Username)
	return req, nil
}

// Register: create a user.  Duplicate usernames are rejected with 409.
func (h *AuthHandler) Register(c echo.Context) error {
	req, err := h.bindCredentials(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := h.Users.Create(req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, repository.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password required"})
		case errors.Is(err, repository.ErrUsernameTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "User already exists"})
		}
		h.Log.Error().Err(err).Msg("register failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Registration failed"})
	}
	h.Log.Info().Str("user", req.Username).Msg("user registered")
	return c.JSON(http.StatusOK, echo.Map{"message": "User successfully registered. Now you can login"})
}

// Login: verify credentials, bind a fresh session and set its cookie.  The
// signed token is also returned in the body for clients without cookies.
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := h.bindCredentials(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}

	// Always mint a new ID so a session cookie planted before login is
	// never promoted to an authenticated one.
	sid, err := repository.NewSessionID()
	if err != nil {
		h.Log.Error().Err(err).Msg("session id generation failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed"})
	}
	sess, err := h.Auth.Login(c.Request().Context(), sid, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid login. Check username and password"})
		}
		h.Log.Error().Err(err).Msg("login failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed"})
	}

	if old, err := c.Cookie(h.CookieName); err == nil && old.Value != "" && old.Value != sid {
		if err := h.Sessions.Delete(c.Request().Context(), old.Value); err != nil {
			h.Log.Warn().Err(err).Msg("previous session not removed")
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     h.CookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.Log.Info().Str("user", sess.Username).Msg("user logged in")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User successfully logged in",
		"token":   sess.AccessToken,
	})
}
