// Package bus provides the process-wide "session changed" broadcast.
// The auth gateway publishes; the view binder and navigation refresh
// subscribe. This replaces the ambient DOM events the web client used.
package bus

import "sync"

// Reason describes why the session changed.
type Reason string

const (
	// ReasonLogin fires after a successful login.
	ReasonLogin Reason = "login"
	// ReasonLogout fires after logout or forced cleanup.
	ReasonLogout Reason = "logout"
	// ReasonRegistered fires after a successful registration
	// (the user is not authenticated yet).
	ReasonRegistered Reason = "registered"
)

// SessionChanged is the event delivered to subscribers.
type SessionChanged struct {
	Reason Reason
}

// Bus is a fan-out broadcast channel for session changes.
// Publish never blocks: a subscriber that has not drained its buffer
// misses intermediate events but always sees the latest.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan SessionChanged
	next int
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[int]chan SessionChanged)}
}

// Subscribe registers a listener. The returned cancel func must be
// called when the listener goes away.
func (b *Bus) Subscribe() (<-chan SessionChanged, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan SessionChanged, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish broadcasts the event to every subscriber.
func (b *Bus) Publish(ev SessionChanged) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber still has an undelivered event; replace it
			// so the latest state wins.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
