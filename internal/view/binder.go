// Package view derives UI visibility from session state. No other
// component toggles protected regions; every change flows through the
// binder's recomputation so the UI cannot diverge from storage.
package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/me/evento/internal/bus"
	"github.com/me/evento/internal/session"
	"github.com/me/evento/pkg/model"
)

// Kind classifies a protected region.
type Kind string

const (
	// AuthenticatedOnly regions show for any logged-in user.
	AuthenticatedOnly Kind = "authenticated-only"
	// GuestOnly regions show only when logged out.
	GuestOnly Kind = "guest-only"
	// AdminOnly regions show for admins (e.g. moderation links).
	AdminOnly Kind = "admin-only"
)

type visibilityBinding struct {
	kind  Kind
	apply func(visible bool)
}

// Binder recomputes and applies region visibility on every session
// change. Recomputation is side-effect-free apart from the registered
// callbacks and never fails.
type Binder struct {
	sessions *session.Manager
	logger   *slog.Logger

	mu         sync.Mutex
	visibility map[string]visibilityBinding
	usernames  []func(text string)
}

// NewBinder creates a Binder over the session manager.
func NewBinder(sessions *session.Manager, logger *slog.Logger) *Binder {
	return &Binder{
		sessions:   sessions,
		logger:     logger.With("component", "view-binder"),
		visibility: make(map[string]visibilityBinding),
	}
}

// BindVisibility registers a protected region. The callback receives
// the region's computed visibility on every Apply.
func (b *Binder) BindVisibility(name string, kind Kind, apply func(visible bool)) {
	b.mu.Lock()
	b.visibility[name] = visibilityBinding{kind: kind, apply: apply}
	b.mu.Unlock()
}

// BindUsername registers a username display region. The callback
// receives the display text ("" when anonymous).
func (b *Binder) BindUsername(apply func(text string)) {
	b.mu.Lock()
	b.usernames = append(b.usernames, apply)
	b.mu.Unlock()
}

// Decide computes the visibility of a region kind for the given session
// user (nil when anonymous). Exported so templates and tests can use
// the same predicate the binder applies.
func Decide(kind Kind, authenticated bool, u *model.User) bool {
	switch kind {
	case AuthenticatedOnly:
		return authenticated
	case GuestOnly:
		return !authenticated
	case AdminOnly:
		// Stored roles are normalized, but sessions written by older
		// clients may carry arbitrary casing; parse rather than compare.
		return u != nil && model.ParseRole(string(u.Role)) == model.RoleAdmin
	default:
		return false
	}
}

// Apply recomputes every registered region from current session state.
func (b *Binder) Apply() {
	authenticated := b.sessions.IsAuthenticated()
	user := b.sessions.Current()

	b.mu.Lock()
	defer b.mu.Unlock()

	for name, binding := range b.visibility {
		visible := Decide(binding.kind, authenticated, user)
		b.logger.Debug("region", "name", name, "kind", binding.kind, "visible", visible)
		binding.apply(visible)
	}

	text := ""
	if authenticated && user != nil {
		text = user.DisplayName()
	}
	for _, apply := range b.usernames {
		apply(text)
	}
}

// Watch applies once immediately (initial page load) and then reapplies
// on every session-changed event until ctx is done.
func (b *Binder) Watch(ctx context.Context, sb *bus.Bus) {
	b.Apply()

	ch, cancel := sb.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			b.Apply()
		}
	}
}

// NavState is a snapshot of the binder's decisions for template
// rendering.
type NavState struct {
	Authenticated bool
	Admin         bool
	Organizer     bool
	DisplayName   string
}

// Nav computes the navigation snapshot for the current session.
func (b *Binder) Nav() NavState {
	authenticated := b.sessions.IsAuthenticated()
	user := b.sessions.Current()

	nav := NavState{
		Authenticated: authenticated,
		Admin:         Decide(AdminOnly, authenticated, user),
	}
	if authenticated && user != nil {
		nav.DisplayName = user.DisplayName()
		nav.Organizer = user.CanOrganize()
	}
	return nav
}
