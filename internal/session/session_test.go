package session

import (
	"encoding/json"
	"testing"

	"github.com/me/evento/internal/logging"
	"github.com/me/evento/internal/store"
	"github.com/me/evento/pkg/model"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	ss := NewSessionStore(store.NewMemStore(), logging.Discard())

	u := &model.User{ID: 7, Username: "ivan", Email: "ivan@example.com", Role: model.RoleOrganizer}
	if err := ss.Set(u); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got := ss.Get()
	if got == nil {
		t.Fatal("Get() = nil after Set")
	}
	if got.ID != 7 || got.Username != "ivan" || got.Role != model.RoleOrganizer {
		t.Errorf("Get() = %+v, want stored user", got)
	}
}

func TestSessionStoreNormalizesRole(t *testing.T) {
	tests := []struct {
		raw  model.Role
		want model.Role
	}{
		{"Admin", model.RoleAdmin},
		{"ORGANIZER", model.RoleOrganizer},
		{"visitor", model.RoleVisitor},
		{"something-new", model.RoleVisitor},
	}

	for _, tt := range tests {
		st := store.NewMemStore()
		ss := NewSessionStore(st, logging.Discard())

		if err := ss.Set(&model.User{ID: 1, Role: tt.raw}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if got := ss.Get(); got.Role != tt.want {
			t.Errorf("role %q stored as %q, want %q", tt.raw, got.Role, tt.want)
		}

		// The persisted JSON itself carries the normalized role.
		raw, _, _ := st.Get("user")
		var onDisk model.User
		if err := json.Unmarshal([]byte(raw), &onDisk); err != nil {
			t.Fatalf("unmarshal stored record: %v", err)
		}
		if onDisk.Role != tt.want {
			t.Errorf("persisted role = %q, want %q", onDisk.Role, tt.want)
		}
	}
}

func TestSessionStoreSetNilDeletes(t *testing.T) {
	st := store.NewMemStore()
	ss := NewSessionStore(st, logging.Discard())

	if err := ss.Set(&model.User{ID: 1}); err != nil {
		t.Fatal(err)
	}
	if err := ss.Set(nil); err != nil {
		t.Fatalf("Set(nil): %v", err)
	}
	if ss.Get() != nil {
		t.Error("record still present after Set(nil)")
	}
	if _, ok, _ := st.Get("user"); ok {
		t.Error("storage entry still present after Set(nil)")
	}
}

func TestSessionStorePurgesCorruptRecord(t *testing.T) {
	st := store.NewMemStore()
	if err := st.Set("user", "{not json"); err != nil {
		t.Fatal(err)
	}

	ss := NewSessionStore(st, logging.Discard())
	if got := ss.Get(); got != nil {
		t.Errorf("Get() = %+v, want nil for corrupt record", got)
	}
	if _, ok, _ := st.Get("user"); ok {
		t.Error("corrupt record not purged")
	}
}

func TestManagerIsAuthenticatedConjunction(t *testing.T) {
	user := &model.User{ID: 1, Username: "ivan", Role: model.RoleVisitor}

	t.Run("both present", func(t *testing.T) {
		m := NewManager(store.NewMemStore(), logging.Discard())
		if err := m.Tokens.Set(futureToken(t)); err != nil {
			t.Fatal(err)
		}
		if err := m.Users.Set(user); err != nil {
			t.Fatal(err)
		}
		if !m.IsAuthenticated() {
			t.Error("IsAuthenticated() = false with token and record present")
		}
	})

	t.Run("token only", func(t *testing.T) {
		m := NewManager(store.NewMemStore(), logging.Discard())
		if err := m.Tokens.Set(futureToken(t)); err != nil {
			t.Fatal(err)
		}
		if m.IsAuthenticated() {
			t.Error("IsAuthenticated() = true with a lone token")
		}
	})

	t.Run("record only", func(t *testing.T) {
		m := NewManager(store.NewMemStore(), logging.Discard())
		if err := m.Users.Set(user); err != nil {
			t.Fatal(err)
		}
		if m.IsAuthenticated() {
			t.Error("IsAuthenticated() = true with a lone session record")
		}
	})

	t.Run("expired token with record", func(t *testing.T) {
		st := store.NewMemStore()
		m := NewManager(st, logging.Discard())
		if err := st.Set("token", expiredToken(t)); err != nil {
			t.Fatal(err)
		}
		if err := m.Users.Set(user); err != nil {
			t.Fatal(err)
		}
		if m.IsAuthenticated() {
			t.Error("IsAuthenticated() = true with an expired token")
		}
	})
}

func TestManagerClear(t *testing.T) {
	st := store.NewMemStore()
	m := NewManager(st, logging.Discard())

	if err := m.Tokens.Set(futureToken(t)); err != nil {
		t.Fatal(err)
	}
	if err := m.Users.Set(&model.User{ID: 1}); err != nil {
		t.Fatal(err)
	}

	m.Clear()

	if m.IsAuthenticated() {
		t.Error("still authenticated after Clear")
	}
	if _, ok, _ := st.Get("token"); ok {
		t.Error("token entry survived Clear")
	}
	if _, ok, _ := st.Get("user"); ok {
		t.Error("user entry survived Clear")
	}
}
