package session

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/me/evento/internal/store"
	"github.com/me/evento/pkg/model"
)

// Storage key for the cached current-user record.
const userKey = "user"

// SessionStore owns the cached current-user record. A record may only
// exist paired with a valid token; the auth gateway writes and clears
// both together.
type SessionStore struct {
	store  store.Store
	logger *slog.Logger
}

// NewSessionStore creates a SessionStore over the given storage.
func NewSessionStore(st store.Store, logger *slog.Logger) *SessionStore {
	return &SessionStore{
		store:  st,
		logger: logger.With("component", "session-store"),
	}
}

// Get returns the stored user record, or nil. A missing entry or
// malformed JSON yields nil; corruption is purged.
func (ss *SessionStore) Get() *model.User {
	raw, ok, err := ss.store.Get(userKey)
	if err != nil {
		ss.logger.Warn("session read failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		ss.logger.Debug("purging corrupt session record", "error", err)
		ss.Remove()
		return nil
	}
	return &u
}

// Set stores the user record. Set(nil) is the deletion path, not an
// error. The role is normalized to the closed enum here so that later
// comparisons need no case folding.
func (ss *SessionStore) Set(u *model.User) error {
	if u == nil {
		ss.Remove()
		return nil
	}

	stored := *u
	stored.Role = model.ParseRole(string(u.Role))

	data, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := ss.store.Set(userKey, string(data)); err != nil {
		return fmt.Errorf("store session record: %w", err)
	}
	return nil
}

// Remove deletes the stored record. Idempotent; best effort.
func (ss *SessionStore) Remove() {
	if err := ss.store.Delete(userKey); err != nil {
		ss.logger.Warn("session delete failed", "error", err)
	}
}

// Manager pairs the token and session stores.
type Manager struct {
	Tokens *TokenStore
	Users  *SessionStore
}

// NewManager creates both stores over a shared storage binding.
func NewManager(st store.Store, logger *slog.Logger) *Manager {
	return &Manager{
		Tokens: NewTokenStore(st, logger),
		Users:  NewSessionStore(st, logger),
	}
}

// IsAuthenticated reports whether BOTH a valid token and a session
// record are present. A lone token or a lone session record counts as
// unauthenticated.
func (m *Manager) IsAuthenticated() bool {
	return m.Tokens.Get() != "" && m.Users.Get() != nil
}

// Clear removes both the token and the session record.
func (m *Manager) Clear() {
	m.Tokens.Remove()
	m.Users.Remove()
}

// Current returns the cached user record, or nil when anonymous.
func (m *Manager) Current() *model.User {
	return m.Users.Get()
}
