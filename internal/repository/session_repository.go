package repository

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/book-review-service/internal/model"
)

// SessionStore persists login sessions by their cookie ID.  Get returns
// (nil, nil) for an unknown or expired ID.  Save replaces any existing
// session with the same ID and keeps it until ExpiresAt.
type SessionStore interface {
	Get(ctx context.Context, id string) (*model.Session, error)
	Save(ctx context.Context, s model.Session) error
	Delete(ctx context.Context, id string) error
}

// ErrInvalidSession is returned by Save for a session without an ID or
// whose expiry is already in the past.
var ErrInvalidSession = errors.New("invalid session")

// NewSessionID returns a random URL-safe identifier with 256 bits of entropy.
func NewSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// RedisSessionRepo stores sessions as JSON strings with a TTL matching
// the session's expiry.
type RedisSessionRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisSessionRepo returns a store using keys "session:<id>".
func NewRedisSessionRepo(client *redis.Client) *RedisSessionRepo {
	return &RedisSessionRepo{client: client, prefix: "session:"}
}

func (r *RedisSessionRepo) key(id string) string { return r.prefix + id }

func (r *RedisSessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s model.Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionRepo) Save(ctx context.Context, s model.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if s.ID == "" || ttl <= 0 {
		return ErrInvalidSession
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	return r.client.Set(ctx, r.key(s.ID), data, ttl).Err()
}

func (r *RedisSessionRepo) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

// MemorySessionRepo keeps sessions in process memory.  It is used when
// Redis is unavailable.  Expired entries are dropped lazily on Get and in
// bulk by Sweep.
type MemorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]model.Session
	now      func() time.Time
}

// NewMemorySessionRepo returns an empty store.  A nil now uses time.Now.
func NewMemorySessionRepo(now func() time.Time) *MemorySessionRepo {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionRepo{sessions: make(map[string]model.Session), now: now}
}

func (r *MemorySessionRepo) Get(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	if !r.now().Before(s.ExpiresAt) {
		delete(r.sessions, id)
		return nil, nil
	}
	return &s, nil
}

func (r *MemorySessionRepo) Save(_ context.Context, s model.Session) error {
	if s.ID == "" || !r.now().Before(s.ExpiresAt) {
		return ErrInvalidSession
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *MemorySessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Sweep removes every expired session and returns how many were removed.
func (r *MemorySessionRepo) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for id, s := range r.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run calls Sweep every interval until ctx is cancelled.
func (r *MemorySessionRepo) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}
