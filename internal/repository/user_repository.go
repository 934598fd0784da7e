package repository

import (
	"sync"

	"github.com/iliyamo/book-review-service/internal/model"
	"github.com/iliyamo/book-review-service/internal/utils"
)

// UserRepo is the in-memory user directory.  It answers two questions for
// the auth flow: whether a username is still free and whether a
// username/password pair belongs to a registered user.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]model.User
	cost  int
}

// NewUserRepo returns an empty directory hashing passwords with the given
// bcrypt cost.
func NewUserRepo(bcryptCost int) *UserRepo {
	return &UserRepo{users: make(map[string]model.User), cost: bcryptCost}
}

// IsUsernameAvailable returns true iff no registered user has username.
func (r *UserRepo) IsUsernameAvailable(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, taken := r.users[username]
	return !taken
}

// Create registers a new user.  Usernames are compared exactly.
func (r *UserRepo) Create(username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	if !r.IsUsernameAvailable(username) {
		return ErrUsernameTaken
	}
	// bcrypt is slow; hash before taking the write lock.
	hash, err := utils.HashPassword(password, r.cost)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.users[username]; taken {
		return ErrUsernameTaken
	}
	r.users[username] = model.User{Username: username, PasswordHash: hash}
	return nil
}

// Verify returns true iff a user named username exists and password is the
// one it registered with.
func (r *UserRepo) Verify(username, password string) bool {
	r.mu.RLock()
	u, ok := r.users[username]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	return utils.VerifyPassword(u.PasswordHash, password)
}
