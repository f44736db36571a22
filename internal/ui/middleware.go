package ui

import (
	"context"
	"net/http"

	"github.com/me/evento/internal/view"
)

type contextKey string

const sessionContextKey contextKey = "websession"

// SessionFromContext retrieves the browser session from the request
// context.
func SessionFromContext(ctx context.Context) *WebSession {
	sess, _ := ctx.Value(sessionContextKey).(*WebSession)
	return sess
}

// AuthMiddleware requires a valid browser session and a logged-in
// account. A stale cookie with no stored credentials redirects to the
// login page like any anonymous visitor.
func (ui *UI) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := ui.cookies.FromRequest(r)
		if err != nil {
			ui.logger.Error("session lookup failed", "error", err)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if sess == nil || !ui.sessions.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware requires the admin role. Must be used after
// AuthMiddleware.
func (ui *UI) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := ui.sessions.Current()
		if !view.Decide(view.AdminOnly, ui.sessions.IsAuthenticated(), user) {
			http.Error(w, "Forbidden: admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OptionalAuthMiddleware adds the browser session to the context when
// present but never blocks the request.
func (ui *UI) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := ui.cookies.FromRequest(r)
		if sess != nil {
			r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, sess))
		}
		next.ServeHTTP(w, r)
	})
}
