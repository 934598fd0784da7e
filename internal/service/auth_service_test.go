package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/book-review-service/internal/model"
	"github.com/iliyamo/book-review-service/internal/repository"
	"github.com/iliyamo/book-review-service/internal/utils"
)

const testSecret = "test-secret"

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func newAuth(t *testing.T) (*AuthService, *repository.MemorySessionRepo, *clock) {
	t.Helper()
	users := repository.NewUserRepo(bcrypt.MinCost)
	require.NoError(t, users.Create("alice", "secret"))
	clk := &clock{t: time.Now().UTC()}
	sessions := repository.NewMemorySessionRepo(clk.Now)
	auth := NewAuthService(users, sessions, testSecret)
	auth.Now = clk.Now
	return auth, sessions, clk
}

func TestLoginBindsSession(t *testing.T) {
	auth, sessions, clk := newAuth(t)
	ctx := context.Background()

	sess, err := auth.Login(ctx, "sid", "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.NotEmpty(t, sess.AccessToken)
	assert.WithinDuration(t, clk.t.Add(time.Hour), sess.ExpiresAt, time.Second)

	stored, err := sessions.Get(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, sess.AccessToken, stored.AccessToken)

	username, ok := auth.Resolve(stored)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)
}

func TestLoginErrors(t *testing.T) {
	auth, sessions, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "sid", "", "secret")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = auth.Login(ctx, "sid", "alice", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = auth.Login(ctx, "sid", "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "sid", "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored, err := sessions.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, stored, "failed logins must not bind a session")
}

func TestReloginReplacesBinding(t *testing.T) {
	auth, sessions, _ := newAuth(t)
	users := auth.Users.(*repository.UserRepo)
	require.NoError(t, users.Create("bob", "pw"))
	ctx := context.Background()

	_, err := auth.Login(ctx, "sid", "alice", "secret")
	require.NoError(t, err)
	_, err = auth.Login(ctx, "sid", "bob", "pw")
	require.NoError(t, err)

	stored, err := sessions.Get(ctx, "sid")
	require.NoError(t, err)
	username, ok := auth.Resolve(stored)
	assert.True(t, ok)
	assert.Equal(t, "bob", username)
}

func TestResolveRejects(t *testing.T) {
	auth, _, clk := newAuth(t)
	sess, err := auth.Login(context.Background(), "sid", "alice", "secret")
	require.NoError(t, err)

	t.Run("nil session", func(t *testing.T) {
		_, ok := auth.Resolve(nil)
		assert.False(t, ok)
	})
	t.Run("empty session", func(t *testing.T) {
		_, ok := auth.Resolve(&model.Session{ID: "sid"})
		assert.False(t, ok)
	})
	t.Run("username mismatch", func(t *testing.T) {
		forged := sess
		forged.Username = "mallory"
		_, ok := auth.Resolve(&forged)
		assert.False(t, ok)
	})
	t.Run("foreign signature", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", "alice", clk.t)
		require.NoError(t, err)
		_, ok := auth.Resolve(&model.Session{AccessToken: tok.Token, Username: "alice"})
		assert.False(t, ok)
	})
	t.Run("expired token", func(t *testing.T) {
		still := sess
		clk.t = clk.t.Add(59 * time.Minute)
		_, ok := auth.Resolve(&still)
		assert.True(t, ok, "token is accepted inside its hour")

		clk.t = clk.t.Add(2 * time.Minute)
		_, ok = auth.Resolve(&still)
		assert.False(t, ok, "token is rejected after its hour")
	})
}

func TestSessionFromToken(t *testing.T) {
	auth, _, _ := newAuth(t)
	sess, err := auth.Login(context.Background(), "sid", "alice", "secret")
	require.NoError(t, err)

	bearer := auth.SessionFromToken(sess.AccessToken)
	require.NotNil(t, bearer)
	username, ok := auth.Resolve(bearer)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)

	assert.Nil(t, auth.SessionFromToken("garbage"))
}
