// Package session owns the client-side authentication state: the bearer
// token and the cached current-user record. Both live in an injected
// key/value store and are only ever written together through the auth
// gateway's login/logout operations.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/me/evento/internal/store"
)

// Storage key for the bearer token.
const tokenKey = "token"

var (
	// ErrTokenMalformed indicates the token is not a well-formed JWT
	// or lacks an expiry claim.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenExpired indicates the token's expiry is not in the future.
	ErrTokenExpired = errors.New("token expired")
)

// TokenStore owns the bearer token's lifecycle in persistent storage.
//
// It never surfaces storage errors to callers: a token that cannot be
// read or that fails validation is treated as absent (and purged).
type TokenStore struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewTokenStore creates a TokenStore over the given storage.
func NewTokenStore(st store.Store, logger *slog.Logger) *TokenStore {
	return &TokenStore{
		store:  st,
		logger: logger.With("component", "token-store"),
		now:    time.Now,
	}
}

// Get returns the stored token, or "" if no valid token is stored.
// A stored token that fails structural or expiry validation is deleted
// before returning "".
func (ts *TokenStore) Get() string {
	raw, ok, err := ts.store.Get(tokenKey)
	if err != nil {
		ts.logger.Warn("token read failed", "error", err)
		return ""
	}
	if !ok {
		return ""
	}

	if err := validateToken(raw, ts.now()); err != nil {
		ts.logger.Debug("purging stored token", "reason", err)
		ts.Remove()
		return ""
	}
	return raw
}

// Set stores the token after validating it. An already-expired or
// malformed token is rejected and not stored.
func (ts *TokenStore) Set(token string) error {
	if err := validateToken(token, ts.now()); err != nil {
		return err
	}
	if err := ts.store.Set(tokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Remove deletes the stored token. Idempotent; best effort.
func (ts *TokenStore) Remove() {
	if err := ts.store.Delete(tokenKey); err != nil {
		ts.logger.Warn("token delete failed", "error", err)
	}
}

// validateToken checks that raw is a structurally well-formed JWT whose
// exp claim (Unix seconds) is strictly in the future. The signature is
// deliberately not verified: the client has no key material and the
// backend is the authority. This check only decides whether presenting
// the token can possibly succeed.
func validateToken(raw string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fmt.Errorf("%w: missing exp claim", ErrTokenMalformed)
	}
	if !exp.Time.After(now) {
		return ErrTokenExpired
	}
	return nil
}
