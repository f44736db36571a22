// Package store provides the persistent key/value storage backing the
// client's token and session state. The interface is injected so that
// session code can be tested against an in-memory fake while production
// binds to SQLite.
package store

// Store is a string key/value store.
//
// Get returns ("", false) for missing keys. Implementations must treat
// Set and Delete as idempotent. Errors indicate storage-level failures
// (I/O, corruption); callers that own degraded-mode behavior decide how
// to react.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
