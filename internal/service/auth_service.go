package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/book-review-service/internal/model"
	"github.com/iliyamo/book-review-service/internal/repository"
	"github.com/iliyamo/book-review-service/internal/utils"
)

// CredentialVerifier checks a username/password pair against the user
// directory.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// AuthService issues sessions at login and resolves them back into a
// username on later requests.
type AuthService struct {
	Users    CredentialVerifier
	Sessions repository.SessionStore
	Secret   string
	Now      func() time.Time
}

// NewAuthService wires an AuthService using the wall clock.
func NewAuthService(users CredentialVerifier, sessions repository.SessionStore, secret string) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, Secret: secret, Now: time.Now}
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Login verifies the credentials, signs a one-hour token for username and
// binds {token, username} to sessionID, replacing whatever that session
// held before.
func (s *AuthService) Login(ctx context.Context, sessionID, username, password string) (model.Session, error) {
	if username == "" || password == "" {
		return model.Session{}, ErrMissingCredentials
	}
	if !s.Users.Verify(username, password) {
		return model.Session{}, ErrInvalidCredentials
	}
	tok, err := utils.NewAccessToken(s.Secret, username, s.now())
	if err != nil {
		return model.Session{}, fmt.Errorf("sign token: %w", err)
	}
	sess := model.Session{
		ID:          sessionID,
		AccessToken: tok.Token,
		Username:    username,
		ExpiresAt:   tok.Exp,
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return model.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Resolve returns the username bound to sess.  Besides the binding itself
// the stored token must still verify: correct signature, not expired, and
// asserting the same username.  A nil session resolves to ("", false).
func (s *AuthService) Resolve(sess *model.Session) (string, bool) {
	if !sess.Authenticated() {
		return "", false
	}
	username, err := utils.ParseAccessToken(s.Secret, sess.AccessToken, s.now())
	if err != nil || username != sess.Username {
		return "", false
	}
	return username, true
}

// SessionFromToken builds a transient, unsaved session from a bearer token
// so that clients holding only the login response token can authenticate.
// It returns nil when the token does not verify.
func (s *AuthService) SessionFromToken(raw string) *model.Session {
	username, err := utils.ParseAccessToken(s.Secret, raw, s.now())
	if err != nil {
		return nil
	}
	return &model.Session{AccessToken: raw, Username: username}
}
