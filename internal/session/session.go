// Package session holds the authenticated user's identity and bearer token
// for the BookBrust client.
//
// The store is the single owner of session state. It keeps the current
// session in memory and mirrors every change to the local storage layer, the
// way the browser client mirrored its auth context into localStorage. None
// of its operations can fail in a way that blocks a page: storage errors are
// logged and treated as "no session".
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/bookbrust/bookbrust/internal/storage"
)

// Identity describes the signed-in user as reported by the auth endpoints.
type Identity struct {
	Email     string `json:"email"`
	Alias     string `json:"alias"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Session pairs an identity with the bearer token that authenticates it.
type Session struct {
	Identity Identity `json:"identity"`
	Token    string   `json:"token"`
}

// Store owns the current session. Handlers run concurrently, so access is
// guarded by a mutex; writes are last-write-wins.
type Store struct {
	mu      sync.RWMutex
	current *Session
	db      *storage.Store
}

// NewStore creates a session store backed by the given local storage.
func NewStore(db *storage.Store) *Store {
	return &Store{db: db}
}

// Restore loads the persisted session, if any. It is called once at startup.
// A missing or malformed payload results in no session, never an error: a
// corrupt local database must not keep the client from starting.
func (s *Store) Restore(ctx context.Context) *Session {
	payload, err := s.db.LoadSession(ctx)
	if err != nil {
		// ErrNotFound is the common case on first run; anything else is a
		// storage fault we deliberately swallow.
		if err != storage.ErrNotFound {
			slog.Warn("could not load persisted session", "error", err)
		}
		return nil
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		slog.Warn("persisted session is malformed, discarding", "error", err)
		return nil
	}
	if sess.Token == "" {
		return nil
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	slog.Info("session restored", "alias", sess.Identity.Alias)
	return &sess
}

// Login constructs a session from a token and identity, makes it current,
// and persists it.
func (s *Store) Login(ctx context.Context, token string, identity Identity) *Session {
	sess := &Session{Identity: identity, Token: token}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	payload, err := json.Marshal(sess)
	if err == nil {
		err = s.db.SaveSession(ctx, payload)
	}
	if err != nil {
		slog.Warn("could not persist session", "error", err)
	}

	return sess
}

// Logout clears the in-memory and persisted session along with the
// session-scoped last-search preference. Feature preferences (explore tab,
// genre, bookshelf tab) are left untouched. Logging out with no session is
// a safe no-op.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.db.DeleteSession(ctx); err != nil {
		slog.Warn("could not delete persisted session", "error", err)
	}
	if err := s.db.DeletePreference(ctx, storage.PrefLastSearch); err != nil {
		slog.Warn("could not clear last search", "error", err)
	}
}

// Current returns the active session, or nil when signed out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the bearer token of the active session, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Authenticated reports whether a session with a non-empty token exists.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Token != ""
}
