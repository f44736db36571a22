package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/me/evento/internal/logging"
	"github.com/me/evento/internal/store"
)

// signToken builds a JWT with the given claims. The signature does not
// matter: the token store never verifies it.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func futureToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{"sub": "user", "exp": time.Now().Add(time.Hour).Unix()})
}

func expiredToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{"sub": "user", "exp": time.Now().Add(-time.Hour).Unix()})
}

func TestTokenStoreRoundTrip(t *testing.T) {
	st := store.NewMemStore()
	ts := NewTokenStore(st, logging.Discard())

	token := futureToken(t)
	if err := ts.Set(token); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := ts.Get(); got != token {
		t.Errorf("Get() = %q, want the stored token", got)
	}

	ts.Remove()
	if got := ts.Get(); got != "" {
		t.Errorf("Get() after Remove = %q, want empty", got)
	}
}

func TestTokenStoreGetEmptyWhenAbsent(t *testing.T) {
	ts := NewTokenStore(store.NewMemStore(), logging.Discard())
	if got := ts.Get(); got != "" {
		t.Errorf("Get() on empty store = %q, want empty", got)
	}
}

func TestTokenStoreSetRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"expired", expiredToken(t)},
		{"not a jwt", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"no exp claim", signToken(t, jwt.MapClaims{"sub": "user"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemStore()
			ts := NewTokenStore(st, logging.Discard())

			if err := ts.Set(tt.token); err == nil {
				t.Fatal("Set accepted an invalid token")
			}
			if _, ok, _ := st.Get("token"); ok {
				t.Error("invalid token was persisted")
			}
		})
	}
}

func TestTokenStorePurgesInvalidOnGet(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"expired", expiredToken(t)},
		{"malformed", "garbage"},
		{"missing exp", signToken(t, jwt.MapClaims{"sub": "user"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemStore()
			// Write directly, bypassing Set's validation, the way an old
			// client or an expired-on-disk token would appear.
			if err := st.Set("token", tt.value); err != nil {
				t.Fatal(err)
			}

			ts := NewTokenStore(st, logging.Discard())
			if got := ts.Get(); got != "" {
				t.Errorf("Get() = %q, want empty", got)
			}
			if _, ok, _ := st.Get("token"); ok {
				t.Error("invalid token not purged from storage")
			}
		})
	}
}

func TestTokenStoreExpiryBoundary(t *testing.T) {
	st := store.NewMemStore()
	ts := NewTokenStore(st, logging.Discard())

	// Pin the clock so the boundary is deterministic.
	now := time.Unix(1_700_000_000, 0)
	ts.now = func() time.Time { return now }

	// exp exactly equal to now is NOT in the future: invalid.
	atNow := signToken(t, jwt.MapClaims{"exp": now.Unix()})
	if err := ts.Set(atNow); err == nil {
		t.Error("token expiring exactly now was accepted")
	}

	// One second later is valid.
	oneAfter := signToken(t, jwt.MapClaims{"exp": now.Unix() + 1})
	if err := ts.Set(oneAfter); err != nil {
		t.Errorf("token expiring after now rejected: %v", err)
	}
}
