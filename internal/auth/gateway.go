// Package auth implements the client's authentication gateway: the only
// component that performs the network round trips minting a token and
// fetching the authoritative user record, and the only writer of the
// token/session stores.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/me/evento/internal/bus"
	"github.com/me/evento/internal/session"
	"github.com/me/evento/pkg/api"
	"github.com/me/evento/pkg/model"
)

// State is the gateway's position in the login lifecycle.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Gateway drives the anonymous → authenticating → authenticated state
// machine. All token/session mutations flow through it.
type Gateway struct {
	client   *api.Client
	sessions *session.Manager
	bus      *bus.Bus
	logger   *slog.Logger

	// gen guards against overlapping login attempts: a resolution whose
	// generation is no longer current is discarded (last writer wins is
	// replaced by first-writer-wins per generation).
	gen atomic.Int64

	mu    sync.Mutex
	state State
}

// NewGateway creates a Gateway. The API client reads its bearer token
// through the session manager's token store on every request.
func NewGateway(cfg api.Config, sessions *session.Manager, b *bus.Bus, logger *slog.Logger) *Gateway {
	g := &Gateway{
		sessions: sessions,
		bus:      b,
		logger:   logger.With("component", "auth-gateway"),
		state:    StateAnonymous,
	}
	g.client = api.NewClient(cfg, api.TokenSourceFunc(sessions.Tokens.Get), logger)

	if sessions.IsAuthenticated() {
		g.state = StateAuthenticated
	}
	return g
}

// Client exposes the underlying API client for collaborators (event
// listing, admin panel). They share the gateway's token source.
func (g *Gateway) Client() *api.Client {
	return g.client
}

// State returns the current lifecycle state.
func (g *Gateway) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gateway) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

// Login exchanges credentials for a token, persists it, fetches the
// authoritative user record, and persists that too. All-or-nothing: if
// the profile fetch fails the token is rolled back and nothing remains
// persisted. Publishes exactly one session-changed event on success.
func (g *Gateway) Login(ctx context.Context, email, password string) (*model.User, error) {
	myGen := g.gen.Add(1)
	g.setState(StateAuthenticating)

	token, err := g.client.LoginToken(ctx, email, password)
	if err != nil {
		g.settle(myGen)
		return nil, err
	}

	if g.stale(myGen) {
		return nil, ErrLoginSuperseded
	}

	if err := g.sessions.Tokens.Set(token); err != nil {
		g.settle(myGen)
		return nil, fmt.Errorf("%w: %v", ErrTokenRejected, err)
	}

	user, err := g.client.Profile(ctx)
	if err != nil {
		// A token without a confirmed profile must not remain persisted,
		// and the stores are cleared together: a prior session record
		// must not survive orphaned either.
		if !g.stale(myGen) {
			g.sessions.Clear()
			g.settle(myGen)
		}
		g.logger.Warn("login rolled back", "error", err)
		return nil, &PostLoginProfileError{Err: err}
	}

	if g.stale(myGen) {
		// A newer attempt owns the stores now; do not touch them.
		return nil, ErrLoginSuperseded
	}

	if err := g.sessions.Users.Set(user); err != nil {
		g.sessions.Clear()
		g.settle(myGen)
		return nil, &PostLoginProfileError{Err: err}
	}

	g.setState(StateAuthenticated)
	g.logger.Info("login succeeded", "username", user.Username, "role", user.Role)
	g.bus.Publish(bus.SessionChanged{Reason: bus.ReasonLogin})
	return g.sessions.Users.Get(), nil
}

// CurrentUser fetches the authoritative user record for the stored
// token. A 401 clears both stores (the token is stale); the caller must
// re-authenticate.
func (g *Gateway) CurrentUser(ctx context.Context) (*model.User, error) {
	if g.sessions.Tokens.Get() == "" {
		return nil, api.ErrNoToken
	}

	user, err := g.client.Profile(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			g.sessions.Clear()
			g.setState(StateAnonymous)
			g.bus.Publish(bus.SessionChanged{Reason: bus.ReasonLogout})
			return nil, ErrInvalidToken
		}
		var pe *api.ProtocolError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, &ProfileFetchError{Err: err}
	}
	return user, nil
}

// Register creates a new account with the lowest-privilege role. It
// does not authenticate; on success the UI switches from the register
// form to the login form.
func (g *Gateway) Register(ctx context.Context, email, password, username string) (*model.User, error) {
	user, err := g.client.Register(ctx, api.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
		FullName: username,
		Role:     model.RoleVisitor,
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info("registration succeeded", "username", user.Username)
	g.bus.Publish(bus.SessionChanged{Reason: bus.ReasonRegistered})
	return user, nil
}

// Logout unconditionally clears both stores and publishes one
// session-changed event. Best effort, always succeeds, no network call.
func (g *Gateway) Logout() {
	g.sessions.Clear()
	g.setState(StateAnonymous)
	g.logger.Info("logged out")
	g.bus.Publish(bus.SessionChanged{Reason: bus.ReasonLogout})
}

// stale reports whether a newer login attempt has started since myGen.
func (g *Gateway) stale(myGen int64) bool {
	return g.gen.Load() != myGen
}

// settle returns the state machine to the state implied by storage
// after a failed attempt, unless a newer attempt is in flight.
func (g *Gateway) settle(myGen int64) {
	if g.stale(myGen) {
		return
	}
	if g.sessions.IsAuthenticated() {
		g.setState(StateAuthenticated)
	} else {
		g.setState(StateAnonymous)
	}
}
