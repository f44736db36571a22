package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/me/evento/internal/store"
)

const (
	// SessionCookieName is the name of the browser session cookie.
	SessionCookieName = "evento_session"
	// SessionDuration is the browser session lifetime.
	SessionDuration = 24 * time.Hour

	webSessionPrefix = "websess:"
)

// WebSession marks a browser that has passed the login form. The
// credential itself lives in the session manager; the cookie only ties
// a browser to it.
type WebSession struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has passed its expiry.
func (s *WebSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// CookieSessions creates and validates browser sessions backed by the
// credential store.
type CookieSessions struct {
	store store.Store
}

// NewCookieSessions creates a session registry over the store.
func NewCookieSessions(st store.Store) *CookieSessions {
	return &CookieSessions{store: st}
}

// Create mints a new browser session and persists it.
func (cs *CookieSessions) Create() (*WebSession, error) {
	now := time.Now()
	sess := &WebSession{
		ID:        "sess_" + uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(SessionDuration),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := cs.store.Set(webSessionPrefix+sess.ID, string(data)); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get returns the session with the given ID, or nil when it is absent,
// corrupt, or expired. Expired and corrupt entries are purged.
func (cs *CookieSessions) Get(id string) (*WebSession, error) {
	raw, ok, err := cs.store.Get(webSessionPrefix + id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var sess WebSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		_ = cs.store.Delete(webSessionPrefix + id)
		return nil, nil
	}
	if sess.IsExpired() {
		_ = cs.store.Delete(webSessionPrefix + id)
		return nil, nil
	}
	return &sess, nil
}

// Delete removes a browser session.
func (cs *CookieSessions) Delete(id string) error {
	return cs.store.Delete(webSessionPrefix + id)
}

// FromRequest extracts the browser session from the request cookie.
func (cs *CookieSessions) FromRequest(r *http.Request) (*WebSession, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, nil
	}
	return cs.Get(cookie.Value)
}

// SetSessionCookie sets the browser session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, sess *WebSession, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  sess.ExpiresAt,
	})
}

// ClearSessionCookie removes the browser session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
