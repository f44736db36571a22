package api

import "net/http"

// TokenSource supplies the current bearer token, or "" when anonymous.
// The client consults it immediately before each request, never caching
// headers across calls, because the token can change between calls
// (login, logout, expiry purge).
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a func to the TokenSource interface.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// StaticToken is a TokenSource returning a fixed token.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Headers builds the header set for an API request. Pure: no I/O.
// The Authorization header is included iff a token is present.
func Headers(token string) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
